package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// ItemRegistry grava itens de estoque.
type ItemRegistry interface {
	Register(ctx context.Context, name string, quantity int64) error
}

// ItemRegistrar atende POST /create-store-item.
type ItemRegistrar struct {
	items ItemRegistry
}

func NewItemRegistrar(items ItemRegistry) *ItemRegistrar {
	return &ItemRegistrar{items: items}
}

// Handle grava o item sem checar existência: um segundo registro com o
// mesmo nome substitui a quantidade anterior.
func (h *ItemRegistrar) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body CreateStoreItemRequest
	if err := decode([]byte(req.Body), &body); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("invalid create store item request")
		return apiError(err), nil
	}

	if err := h.items.Register(ctx, body.ItemName, int64(*body.Quantity)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("item", body.ItemName).Msg("failed to create store item")
		return apiError(err), nil
	}

	return apiOK("Store item created successfully."), nil
}
