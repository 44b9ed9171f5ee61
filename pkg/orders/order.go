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
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/raywall/retail-services/dyndb"
	"github.com/raywall/retail-services/pkg/metrics"
	"github.com/rs/zerolog"
)

// PartitionKey agrupa os pedidos na tabela compartilhada.
const PartitionKey = "Order"

// Order é gravado uma única vez e nunca alterado. Items é opaco e
// persistido exatamente como recebido.
type Order struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Items []any  `dynamodbav:"order"`
}

// ID devolve o identificador gerado do pedido.
func (o Order) ID() string { return o.SK }

// Notifier é avisado depois que um pedido foi persistido.
type Notifier interface {
	OrderCreated(ctx context.Context, order Order) error
}

// Option configura o Service.
type Option func(*Service)

// WithIDGenerator troca o gerador de identificadores (default: UUID v4).
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithNotifier registra um Notifier chamado após cada gravação.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// Service grava pedidos na tabela compartilhada.
type Service struct {
	store    dyndb.Store[Order]
	metrics  metrics.Provider
	newID    func() string
	notifier Notifier
}

func NewService(store dyndb.Store[Order], mp metrics.Provider, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: mp,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create persiste um novo pedido e devolve o identificador gerado.
// Falha no Notifier é apenas logada: o pedido já está gravado.
func (s *Service) Create(ctx context.Context, items []any) (string, error) {
	order := Order{PK: PartitionKey, SK: s.newID(), Items: items}

	if err := s.store.Put(ctx, order); err != nil {
		return "", fmt.Errorf("orders: create %s: %w", order.SK, err)
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("order_id", order.SK).Int("item_count", len(items)).Msg("order created")
	metrics.Incr(ctx, s.metrics, metrics.OrderCreated)

	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, order); err != nil {
			logger.Error().Err(err).Str("order_id", order.SK).Msg("failed to publish order notification")
			metrics.Incr(ctx, s.metrics, metrics.OrderNotifyError)
		}
	}
	return order.SK, nil
}
