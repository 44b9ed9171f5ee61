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
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/raywall/retail-services/pkg/handler"
	"github.com/raywall/retail-services/pkg/metrics"
	"github.com/rs/zerolog/log"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

// APIGatewayHandler é a assinatura das operações expostas pelo API Gateway.
type APIGatewayHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// WorkflowHandler é a assinatura das tarefas chamadas pelo Step Functions.
type WorkflowHandler func(ctx context.Context, event json.RawMessage) (handler.Response, error)

type correlationKey struct{}

// WithCorrelationID guarda o correlation id no contexto.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID devolve o correlation id do contexto, se houver.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

type flusher interface {
	Flush() error
}

// WrapAPIGateway adiciona correlation id, logger contextual, log de conclusão
// e métricas a uma operação do API Gateway.
func WrapAPIGateway(name string, mp metrics.Provider, next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		start := time.Now()

		corrID := headerValue(req.Headers, HeaderCorrelationID)
		if corrID == "" {
			corrID = req.RequestContext.RequestID
		}
		if corrID == "" {
			corrID = uuid.NewString()
		}

		// Configura Logger Contextual
		logger := log.With().Str("correlation_id", corrID).Str("handler", name).Logger()
		ctx = logger.WithContext(WithCorrelationID(ctx, corrID))

		response, err := next(ctx, req)
		if err != nil {
			// Os handlers já traduzem falhas em resposta; um erro aqui é inesperado.
			logger.Error().Err(err).Msg("unhandled handler error")
			response = events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       handler.MessageBody("internal server error"),
			}
			err = nil
		}

		latency := time.Since(start).Milliseconds()
		logger.Info().
			Str("method", req.HTTPMethod).
			Str("path", req.Path).
			Int("status", response.StatusCode).
			Int64("latency_ms", latency).
			Msg("lambda request completed")

		if kind := statusKind(response.StatusCode); kind != "" {
			metrics.Incr(ctx, mp, metrics.HandlerError, "handler:"+name, "kind:"+kind)
		}
		metrics.Observe(ctx, mp, metrics.HandlerLatency, float64(latency), "handler:"+name)
		flush(ctx, mp)

		// Injeta headers de observabilidade na resposta
		if response.Headers == nil {
			response.Headers = make(map[string]string)
		}
		response.Headers[HeaderCorrelationID] = corrID

		return response, err
	}
}

// WrapWorkflow faz o mesmo para tarefas de workflow. O erro da tarefa é
// devolvido intacto: o tipo dele é o que o Step Functions usa para desviar.
func WrapWorkflow(name string, mp metrics.Provider, next WorkflowHandler) WorkflowHandler {
	return func(ctx context.Context, event json.RawMessage) (handler.Response, error) {
		start := time.Now()

		corrID := ""
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			corrID = lc.AwsRequestID
		}
		if corrID == "" {
			corrID = CorrelationID(ctx)
		}
		if corrID == "" {
			corrID = uuid.NewString()
		}

		logger := log.With().Str("correlation_id", corrID).Str("handler", name).Logger()
		ctx = logger.WithContext(WithCorrelationID(ctx, corrID))

		resp, err := next(ctx, event)

		latency := time.Since(start).Milliseconds()
		outcome := "success"
		if err != nil {
			outcome = ErrorType(err)
			metrics.Incr(ctx, mp, metrics.HandlerError, "handler:"+name, "kind:"+errorKind(err))
		}
		logger.Info().
			Str("outcome", outcome).
			AnErr("error", err).
			Int64("latency_ms", latency).
			Msg("workflow task completed")

		metrics.Observe(ctx, mp, metrics.HandlerLatency, float64(latency), "handler:"+name)
		flush(ctx, mp)

		return resp, err
	}
}

func headerValue(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	// API Gateway (REST) preserva a caixa original dos headers
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func statusKind(status int) string {
	switch {
	case status >= 500:
		return "server"
	case status >= 400:
		return "client"
	default:
		return ""
	}
}

// errorKind classifica erros de workflow: resultados de negócio e entrada
// inválida são do cliente, o resto é falha do servidor.
func errorKind(err error) string {
	if StatusFor(err) < 500 {
		return "client"
	}
	return "server"
}

// StatusFor traduz um erro de workflow em status HTTP (usado no runtime local).
func StatusFor(err error) int {
	var (
		invalid  *handler.InvalidInput
		notFound *handler.ItemNotFound
		noStock  *handler.OutOfStock
		failed   *handler.UpdateFailed
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &noStock), errors.As(err, &failed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func flush(ctx context.Context, mp metrics.Provider) {
	f, ok := mp.(flusher)
	if !ok {
		return
	}
	if err := f.Flush(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to flush metrics")
	}
}
