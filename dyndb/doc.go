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
// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2), restrita às operações de chave única.
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, que simplifica leitura,
// gravação e update atômico de itens endereçados por chave composta
// (partition key + sort key), eliminando a necessidade de lidar diretamente
// com os tipos de baixo nível do SDK (AttributeValue, expressions, etc.).
//
// Funcionalidades Principais:
// - Get: leitura consistente; `ErrNotFound` quando o item não existe.
// - Put: gravação incondicional (upsert).
// - Add: `SET attr = attr + :delta` atômico com `ReturnValues=ALL_NEW`,
// condicionado à existência do item.
// - MemoryStore: implementação em memória com a mesma semântica.
// - Mocks: `MockStore` e `MockDynamoClient` para testes unitários.
//
// Exemplo:
//
//	type StoreItem struct {
//		PK       string `dynamodbav:"PK"`
//		SK       string `dynamodbav:"SK"`
//		Quantity int64  `dynamodbav:"quantity"`
//	}
//
//	cfg := dyndb.TableConfig[StoreItem]{TableName: "storeDB", HashKey: "PK", SortKey: "SK"}
//	store := dyndb.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
//	_ = store.Put(ctx, StoreItem{PK: "StoreItem", SK: "widget", Quantity: 5})
//	item, err := store.Add(ctx, "StoreItem", "widget", "quantity", -3)
//	if errors.Is(err, dyndb.ErrNotFound) { /* ... */ }
package dyndb
