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
//
// Package retailservices reúne os handlers de uma loja mínima (cadastro de
// itens, consulta e baixa de estoque, registro de pedidos) sobre uma única
// tabela DynamoDB com chave composta PK/SK.
//
// Visão Geral:
// Cada operação é uma função Lambda independente servida pelo mesmo binário
// (cmd/server), escolhida pela variável HANDLER. As operações só se comunicam
// através da tabela compartilhada.
//
// Sub-Pacotes Principais:
//
// 1. envloader:
//   - Carregamento de configurações via tags "env", "envDefault" e "envRequired".
//
// 2. dyndb:
//   - Store[T] tipado com Get, Put e Add atômico (SET attr = attr + :delta).
//   - MemoryStore com a mesma semântica para o runtime local e testes.
//
// 3. pkg/inventory e pkg/orders:
//   - Regras de estoque (Register, Check, Decrement) e gravação de pedidos.
//
// 4. pkg/handler e pkg/transport:
//   - Adaptadores para API Gateway e Step Functions, correlation id, logs e métricas.
//
// Layout da tabela:
//
//	PK           SK            Atributos
//	"StoreItem"  nome do item  quantity (número)
//	"Order"      UUID v4       order (lista opaca)
//
// Exemplo de Início Rápido (runtime local com tabela em memória):
//
//	RUNTIME=local TABLE_BACKEND=memory STORE_TABLE_NAME=storeDB go run ./cmd/server
//	curl -XPOST localhost:8080/create-store-item -d '{"itemName":"widget","quantity":5}'
//	curl 'localhost:8080/is-item-in-stock?itemName=widget&quantity=3'
package retailservices
