package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/retail-services/pkg/config"
	"github.com/raywall/retail-services/pkg/logger"
	"github.com/raywall/retail-services/pkg/observability"
	"github.com/raywall/retail-services/pkg/transport"
	"github.com/rs/zerolog/log"
)

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("FATAL: falha na inicialização")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	// 1. Carrega Configuração (uma única vez por processo)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Logger e métricas
	logger.Configure(cfg.Logging)

	mp, err := observability.SetupMetrics(cfg.Metrics, cfg.Handler)
	if err != nil {
		return err
	}
	if c, ok := mp.(io.Closer); ok {
		defer c.Close()
	}

	// 3. Clientes e serviços (Boot Time)
	a, err := newApp(ctx, cfg, mp)
	if err != nil {
		return err
	}

	// 4. Seleciona Runtime Strategy
	switch cfg.Runtime {
	case "local":
		return serverStarter(ctx, cfg.Port, transport.NewRouter(a.routes()))
	case "lambda":
		h, err := a.lambdaHandler(cfg.Handler)
		if err != nil {
			return err
		}
		log.Info().Str("handler", cfg.Handler).Msg("iniciando runtime lambda")
		lambdaStarter(h)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Runtime)
	}
}
