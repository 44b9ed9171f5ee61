package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/raywall/retail-services/dyndb"
	"github.com/raywall/retail-services/pkg/metrics"
	"github.com/rs/zerolog"
)

// ErrUpdateFailed indica que o decremento não devolveu o item atualizado,
// seja porque o item não existe ou porque a tabela não retornou atributos.
var ErrUpdateFailed = errors.New("inventory: update returned no item")

// Service concentra as regras de estoque sobre a tabela compartilhada.
type Service struct {
	store   dyndb.Store[StoreItem]
	metrics metrics.Provider
}

func NewService(store dyndb.Store[StoreItem], mp metrics.Provider) *Service {
	return &Service{store: store, metrics: mp}
}

// Register grava (ou sobrescreve) o item com a quantidade informada.
func (s *Service) Register(ctx context.Context, name string, quantity int64) error {
	if err := s.store.Put(ctx, NewStoreItem(name, quantity)); err != nil {
		return fmt.Errorf("inventory: register %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Info().Str("item", name).Int64("quantity", quantity).Msg("store item registered")
	metrics.Incr(ctx, s.metrics, metrics.StoreItemCreated)
	return nil
}

// Check compara a quantidade armazenada com a solicitada. Não altera estado.
func (s *Service) Check(ctx context.Context, name string, quantity int64) (Availability, error) {
	item, err := s.store.Get(ctx, PartitionKey, name)
	if err != nil && !errors.Is(err, dyndb.ErrNotFound) {
		return NotFound, fmt.Errorf("inventory: check %s: %w", name, err)
	}

	result := NotFound
	if item != nil {
		result = OutOfStock
		if item.Quantity >= quantity {
			result = InStock
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("item", name).
		Int64("requested", quantity).
		Stringer("availability", result).
		Msg("stock checked")
	metrics.Incr(ctx, s.metrics, metrics.StockCheck, "outcome:"+result.String())
	return result, nil
}

// Decrement subtrai quantity do estoque de forma atômica e devolve o novo
// valor. Não há verificação prévia: o resultado pode ficar negativo.
func (s *Service) Decrement(ctx context.Context, name string, quantity int64) (int64, error) {
	item, err := s.store.Add(ctx, PartitionKey, name, QuantityAttribute, -quantity)
	switch {
	case errors.Is(err, dyndb.ErrNotFound), errors.Is(err, dyndb.ErrNoAttributes):
		return 0, fmt.Errorf("%w: %s", ErrUpdateFailed, name)
	case err != nil:
		return 0, fmt.Errorf("inventory: decrement %s: %w", name, err)
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("item", name).Int64("decrement", quantity).Int64("quantity", item.Quantity).Msg("stock decremented")
	metrics.Incr(ctx, s.metrics, metrics.StockDecremented)

	if item.Quantity < 0 {
		logger.Warn().Str("item", name).Int64("quantity", item.Quantity).Msg("stock is negative")
		metrics.Incr(ctx, s.metrics, metrics.StockNegative)
	}
	return item.Quantity, nil
}
