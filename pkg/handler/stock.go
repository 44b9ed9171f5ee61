package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/retail-services/pkg/inventory"
	"github.com/rs/zerolog"
)

// StockChecker consulta a disponibilidade de um item.
type StockChecker interface {
	Check(ctx context.Context, name string, quantity int64) (inventory.Availability, error)
}

// StockDecrementer baixa o estoque de um item.
type StockDecrementer interface {
	Decrement(ctx context.Context, name string, quantity int64) (int64, error)
}

// StockReader expõe a mesma consulta de estoque para dois tipos de chamador.
//
//   - HandleHTTP (GET /is-item-in-stock): os três resultados são 200 com mensagem.
//   - HandleWorkflow (tarefa do Step Functions): só "em estoque" é sucesso;
//     item inexistente e estoque insuficiente viram *ItemNotFound e *OutOfStock.
type StockReader struct {
	stock StockChecker
}

func NewStockReader(stock StockChecker) *StockReader {
	return &StockReader{stock: stock}
}

func (h *StockReader) HandleHTTP(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := req.QueryStringParameters
	query := StockQuery{ItemName: params["itemName"], Quantity: params["quantity"]}
	if err := check(&query); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("invalid stock query")
		return apiError(err), nil
	}

	quantity, err := ParseQuantity(query.Quantity)
	if err != nil {
		in := &InvalidInput{Reason: err.Error()}
		zerolog.Ctx(ctx).Warn().Err(in).Msg("invalid stock query")
		return apiError(in), nil
	}

	result, err := h.stock.Check(ctx, query.ItemName, int64(quantity))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("item", query.ItemName).Msg("failed to check stock")
		return apiError(err), nil
	}

	return apiOK(result.Message(query.ItemName)), nil
}

func (h *StockReader) HandleWorkflow(ctx context.Context, event json.RawMessage) (Response, error) {
	var in ItemEvent
	if err := decode(event, &in); err != nil {
		return Response{}, err
	}
	name := in.Item.ItemName

	result, err := h.stock.Check(ctx, name, int64(*in.Item.Quantity))
	if err != nil {
		return Response{}, err
	}

	switch result {
	case inventory.InStock:
		return workflowOK(result.Message(name)), nil
	case inventory.OutOfStock:
		return Response{}, &OutOfStock{Item: name}
	default:
		return Response{}, &ItemNotFound{Item: name}
	}
}

// StockWriter é a tarefa de workflow que baixa o estoque de um item.
type StockWriter struct {
	stock StockDecrementer
}

func NewStockWriter(stock StockDecrementer) *StockWriter {
	return &StockWriter{stock: stock}
}

// HandleWorkflow decrementa de forma atômica, sem checar o valor atual.
// Quando a tabela não devolve o item atualizado o erro é *UpdateFailed.
func (h *StockWriter) HandleWorkflow(ctx context.Context, event json.RawMessage) (Response, error) {
	logEvent := zerolog.Ctx(ctx).Debug()
	if json.Valid(event) {
		logEvent.RawJSON("event", event)
	} else {
		logEvent.Bytes("event", event)
	}
	logEvent.Msg("update item stock event")

	var in ItemEvent
	if err := decode(event, &in); err != nil {
		return Response{}, err
	}
	name := in.Item.ItemName

	updated, err := h.stock.Decrement(ctx, name, int64(*in.Item.Quantity))
	if errors.Is(err, inventory.ErrUpdateFailed) {
		return Response{}, &UpdateFailed{Item: name}
	}
	if err != nil {
		return Response{}, err
	}

	return workflowOK(quantityUpdated(name, updated)), nil
}

func quantityUpdated(item string, quantity int64) string {
	return fmt.Sprintf("Quantity of %s updated to %d.", item, quantity)
}
