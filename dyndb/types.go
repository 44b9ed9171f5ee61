// dyndb/types.go
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	// ErrNotFound é o erro padrão quando o item não existe
	ErrNotFound = errors.New("dyndb: item not found")

	// ErrNoAttributes indica que o UpdateItem foi aceito mas não devolveu os atributos atualizados
	ErrNoAttributes = errors.New("dyndb: update returned no attributes")
)

// DynamoDBClient interface para abstrair o cliente DynamoDB.
// Somente as operações de chave única usadas pelo store.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

var _ DynamoDBClient = (*dynamodb.Client)(nil)

// Store é a interface principal (genérica)
type Store[T any] interface {
	// Get lê o item pela chave composta. Retorna ErrNotFound se não existir.
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)

	// Put grava o item incondicionalmente (upsert).
	Put(ctx context.Context, item T) error

	// Add soma delta ao atributo numérico de forma atômica e devolve o item
	// como ficou depois da escrita. Delta negativo decrementa. O item precisa
	// existir: caso contrário retorna ErrNotFound.
	Add(ctx context.Context, hashKey, sortKey any, attribute string, delta int64) (*T, error)
}

// TableConfig descreve a tabela e suas chaves
type TableConfig[T any] struct {
	TableName string
	HashKey   string
	SortKey   string // opcional
}
