// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package handler

import "fmt"

// Erros devolvidos pelos handlers de workflow. O runtime do Lambda reporta o
// nome do tipo como errorType, que o Step Functions usa em ErrorEquals; por
// isso são sempre retornados sem wrap.

// InvalidInput indica evento ou corpo malformado.
type InvalidInput struct {
	Reason string
}

func (e *InvalidInput) Error() string { return e.Reason }

// ItemNotFound indica consulta a um item nunca registrado.
type ItemNotFound struct {
	Item string
}

func (e *ItemNotFound) Error() string { return fmt.Sprintf("%s does not exist.", e.Item) }

// OutOfStock indica que a quantidade armazenada é menor que a solicitada.
type OutOfStock struct {
	Item string
}

func (e *OutOfStock) Error() string { return fmt.Sprintf("%s is out of stock.", e.Item) }

// UpdateFailed indica que o decremento não devolveu o item atualizado.
type UpdateFailed struct {
	Item string
}

func (e *UpdateFailed) Error() string {
	return fmt.Sprintf("Failed to update the quantity of %s.", e.Item)
}
