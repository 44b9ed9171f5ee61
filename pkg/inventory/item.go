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
package inventory

import "fmt"

// PartitionKey agrupa os itens de estoque na tabela compartilhada.
const PartitionKey = "StoreItem"

// QuantityAttribute é o atributo numérico alterado pelo decremento atômico.
const QuantityAttribute = "quantity"

// StoreItem é o registro de estoque: PK fixa, SK = nome do item.
type StoreItem struct {
	PK       string `dynamodbav:"PK"`
	SK       string `dynamodbav:"SK"`
	Quantity int64  `dynamodbav:"quantity"`
}

// NewStoreItem monta o registro de um item com a chave já preenchida.
func NewStoreItem(name string, quantity int64) StoreItem {
	return StoreItem{PK: PartitionKey, SK: name, Quantity: quantity}
}

// Availability é o resultado de uma consulta de estoque.
type Availability int

const (
	NotFound Availability = iota
	InStock
	OutOfStock
)

// String devolve o identificador usado em logs e tags de métrica.
func (a Availability) String() string {
	switch a {
	case InStock:
		return "in_stock"
	case OutOfStock:
		return "out_of_stock"
	default:
		return "not_found"
	}
}

// Message devolve a frase exposta ao cliente para o item consultado.
func (a Availability) Message(item string) string {
	switch a {
	case InStock:
		return fmt.Sprintf("%s is in stock.", item)
	case OutOfStock:
		return fmt.Sprintf("%s is out of stock.", item)
	default:
		return fmt.Sprintf("%s does not exist.", item)
	}
}
