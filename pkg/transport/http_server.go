package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raywall/retail-services/pkg/handler"
	"github.com/rs/zerolog/log"
)

// Routes agrupa as operações servidas pelo runtime local. Campos nil não
// são registrados.
type Routes struct {
	CreateStoreItem APIGatewayHandler
	IsItemInStock   APIGatewayHandler
	CreateOrder     APIGatewayHandler
	CheckItemStock  WorkflowHandler
	UpdateItemStock WorkflowHandler
}

// NewRouter monta as rotas da API original mais as tarefas de workflow
// expostas via POST para testes manuais.
func NewRouter(routes Routes) *mux.Router {
	r := mux.NewRouter()
	r.Use(observabilityMiddleware)

	if routes.CreateStoreItem != nil {
		r.HandleFunc("/create-store-item", apiGatewayAdapter(routes.CreateStoreItem)).Methods(http.MethodPost)
	}
	if routes.IsItemInStock != nil {
		r.HandleFunc("/is-item-in-stock", apiGatewayAdapter(routes.IsItemInStock)).Methods(http.MethodGet)
	}
	if routes.CreateOrder != nil {
		r.HandleFunc("/create-order", apiGatewayAdapter(routes.CreateOrder)).Methods(http.MethodPost)
	}
	if routes.CheckItemStock != nil {
		r.HandleFunc("/check-item-stock", workflowAdapter(routes.CheckItemStock)).Methods(http.MethodPost)
	}
	if routes.UpdateItemStock != nil {
		r.HandleFunc("/update-item-stock", workflowAdapter(routes.UpdateItemStock)).Methods(http.MethodPost)
	}
	return r
}

// StartHTTPServer serve o handler até o contexto ser cancelado e então
// encerra de forma graciosa.
func StartHTTPServer(ctx context.Context, port int, h http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Servidor HTTP ouvindo em %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("encerrando servidor HTTP")
	return srv.Shutdown(shutdownCtx)
}

// apiGatewayAdapter converte a requisição HTTP no evento de proxy do API Gateway.
func apiGatewayAdapter(h APIGatewayHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, nil, handler.MessageBody("could not read request body"))
			return
		}
		defer r.Body.Close()

		req := events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Path:                  r.URL.Path,
			Headers:               firstValues(r.Header),
			QueryStringParameters: firstValues(r.URL.Query()),
			Body:                  string(body),
		}

		resp, err := h(r.Context(), req)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Erro crítico na execução REST")
			writeJSON(w, http.StatusInternalServerError, nil, handler.MessageBody("internal server error"))
			return
		}
		writeJSON(w, resp.StatusCode, resp.Headers, resp.Body)
	}
}

// workflowError imita o payload de erro que o runtime do Lambda devolve.
type workflowError struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

func workflowAdapter(h WorkflowHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, nil, handler.MessageBody("could not read request body"))
			return
		}
		defer r.Body.Close()

		resp, err := h(r.Context(), body)
		if err != nil {
			status := StatusFor(err)
			msg := err.Error()
			if status == http.StatusInternalServerError {
				msg = "internal server error"
			}
			payload, _ := json.Marshal(workflowError{ErrorType: ErrorType(err), ErrorMessage: msg})
			writeJSON(w, status, nil, string(payload))
			return
		}

		payload, _ := json.Marshal(resp)
		writeJSON(w, http.StatusOK, nil, string(payload))
	}
}

// ErrorType devolve o nome do tipo do erro, como o runtime do Lambda reporta.
func ErrorType(err error) string {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	}
	return t.Name()
}

func writeJSON(w http.ResponseWriter, status int, headers map[string]string, body string) {
	w.Header().Set("Content-Type", "application/json")
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func firstValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// observabilityMiddleware garante um correlation id na requisição (os
// wrappers de Lambda o reaproveitam) e adiciona o header de latência.
// O log de conclusão fica a cargo dos wrappers.
func observabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
			r.Header.Set(HeaderCorrelationID, corrID)
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		logger := log.With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(WithCorrelationID(r.Context(), corrID))

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      time.Now(),
		}
		next.ServeHTTP(wrapper, r.WithContext(ctx))
	})
}
