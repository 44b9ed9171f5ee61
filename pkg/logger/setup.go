package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/retail-services/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure inicializa o logger global baseando-se na configuração de ambiente.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return configure(cfg, os.Stdout)
}

func configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para o CloudWatch, Console "bonito" para o runtime local se solicitado
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "retail-services").
		Logger()

	// zerolog.Ctx cai no DefaultContextLogger quando o contexto não tem logger
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	return logger
}
