// dyndb/memory.go
package dyndb

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryStore implementa Store[T] em memória, com a mesma semântica de
// chave composta e de update atômico do DynamoDB. Usado no runtime local
// e nos testes de cenário.
type MemoryStore[T any] struct {
	mu    sync.Mutex
	cfg   TableConfig[T]
	items map[[2]string]map[string]types.AttributeValue
}

// NewMemoryStore cria um store vazio para a configuração informada.
func NewMemoryStore[T any](cfg TableConfig[T]) *MemoryStore[T] {
	return &MemoryStore[T]{
		cfg:   cfg,
		items: make(map[[2]string]map[string]types.AttributeValue),
	}
}

func (m *MemoryStore[T]) Get(_ context.Context, hashKey, sortKey any) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	av, ok := m.items[memoryKey(hashKey, sortKey)]
	if !ok {
		return nil, ErrNotFound
	}
	return decode[T](av)
}

func (m *MemoryStore[T]) Put(_ context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("memorystore: marshal failed: %w", err)
	}

	hk, err := keyValue(av, m.cfg.HashKey)
	if err != nil {
		return err
	}
	var sk any
	if m.cfg.SortKey != "" {
		if sk, err = keyValue(av, m.cfg.SortKey); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.items[memoryKey(hk, sk)] = av
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore[T]) Add(_ context.Context, hashKey, sortKey any, attribute string, delta int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey(hashKey, sortKey)
	av, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}

	// DynamoDB rejeita "attr + :v" quando attr não existe; reproduzimos o erro.
	current, ok := av[attribute].(*types.AttributeValueMemberN)
	if !ok {
		return nil, fmt.Errorf("memorystore: update failed: attribute %q is not a number", attribute)
	}
	n, err := strconv.ParseInt(current.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("memorystore: update failed: %w", err)
	}

	updated := make(map[string]types.AttributeValue, len(av))
	for k, v := range av {
		updated[k] = v
	}
	updated[attribute] = &types.AttributeValueMemberN{Value: strconv.FormatInt(n+delta, 10)}
	m.items[key] = updated

	return decode[T](updated)
}

// Len devolve a quantidade de itens armazenados.
func (m *MemoryStore[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func decode[T any](av map[string]types.AttributeValue) (*T, error) {
	var item T
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("memorystore: unmarshal failed: %w", err)
	}
	return &item, nil
}

func keyValue(av map[string]types.AttributeValue, name string) (any, error) {
	var v any
	raw, ok := av[name]
	if !ok {
		return nil, fmt.Errorf("memorystore: missing key attribute %q", name)
	}
	if err := attributevalue.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("memorystore: invalid key attribute %q: %w", name, err)
	}
	return v, nil
}

func memoryKey(hashKey, sortKey any) [2]string {
	k := [2]string{fmt.Sprint(hashKey)}
	if sortKey != nil {
		k[1] = fmt.Sprint(sortKey)
	}
	return k
}
