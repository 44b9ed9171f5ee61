package handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// OrderCreator persiste pedidos e devolve o identificador gerado.
type OrderCreator interface {
	Create(ctx context.Context, items []any) (string, error)
}

// OrderRecorder atende POST /create-order. Não valida os itens nem mexe
// no estoque.
type OrderRecorder struct {
	orders OrderCreator
}

func NewOrderRecorder(orders OrderCreator) *OrderRecorder {
	return &OrderRecorder{orders: orders}
}

func (h *OrderRecorder) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body CreateOrderRequest
	if err := decode([]byte(req.Body), &body); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("invalid create order request")
		return apiError(err), nil
	}

	id, err := h.orders.Create(ctx, body.Items)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create order")
		return apiError(err), nil
	}

	return apiOK(fmt.Sprintf("Order %s created successfully.", id)), nil
}
