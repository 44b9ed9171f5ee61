package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/raywall/retail-services/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

type captureNotifier struct {
	orders []Order
	err    error
}

func (c *captureNotifier) OrderCreated(ctx context.Context, order Order) error {
	c.orders = append(c.orders, order)
	return c.err
}

func newMemoryStore() *dyndb.MemoryStore[Order] {
	return dyndb.NewMemoryStore(dyndb.TableConfig[Order]{TableName: "storeDB", HashKey: "PK", SortKey: "SK"})
}

func TestService_Create(t *testing.T) {
	t.Run("items round-trip verbatim", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewService(store, nil)
		ctx := context.Background()

		items := []any{
			map[string]any{"sku": "a", "qty": float64(1)},
			map[string]any{"sku": "b", "qty": float64(2), "note": "gift"},
		}

		id, err := svc.Create(ctx, items)
		require.NoError(t, err)
		assert.Regexp(t, uuidPattern, id)

		stored, err := store.Get(ctx, PartitionKey, id)
		require.NoError(t, err)
		assert.Equal(t, PartitionKey, stored.PK)
		assert.Equal(t, id, stored.ID())
		assert.Equal(t, items, stored.Items)
	})

	t.Run("two orders get distinct ids", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewService(store, nil)

		first, err := svc.Create(context.Background(), []any{})
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), []any{})
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("custom id generator", func(t *testing.T) {
		var got Order
		store := &dyndb.MockStore[Order]{
			PutFn: func(ctx context.Context, item Order) error {
				got = item
				return nil
			},
		}
		svc := NewService(store, nil, WithIDGenerator(func() string { return "order-1" }))

		id, err := svc.Create(context.Background(), []any{"x"})
		require.NoError(t, err)
		assert.Equal(t, "order-1", id)
		assert.Equal(t, Order{PK: "Order", SK: "order-1", Items: []any{"x"}}, got)
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("throttled")
		notifier := &captureNotifier{}
		store := &dyndb.MockStore[Order]{
			PutFn: func(ctx context.Context, item Order) error { return boom },
		}

		_, err := NewService(store, nil, WithNotifier(notifier)).Create(context.Background(), []any{})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, notifier.orders, "nothing is published when the write fails")
	})

	t.Run("notifier receives the stored order", func(t *testing.T) {
		notifier := &captureNotifier{}
		svc := NewService(newMemoryStore(), nil, WithNotifier(notifier))

		id, err := svc.Create(context.Background(), []any{"x", "y"})
		require.NoError(t, err)
		require.Len(t, notifier.orders, 1)
		assert.Equal(t, id, notifier.orders[0].ID())
		assert.Len(t, notifier.orders[0].Items, 2)
	})

	t.Run("notifier failure does not fail the order", func(t *testing.T) {
		store := newMemoryStore()
		notifier := &captureNotifier{err: errors.New("queue unavailable")}
		svc := NewService(store, nil, WithNotifier(notifier))

		id, err := svc.Create(context.Background(), []any{})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, 1, store.Len())
	})
}
