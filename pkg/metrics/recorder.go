package metrics

import (
	"context"

	"github.com/rs/zerolog"
)

// Incr envia um contador unitário. Falhas de envio são apenas logadas:
// métrica nunca derruba uma operação.
func Incr(ctx context.Context, p Provider, name string, tags ...string) {
	if p == nil {
		return
	}
	if err := p.Count(name, 1, tags); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("metric", name).Msg("failed to send metric")
	}
}

// Observe envia um valor para um histograma, com a mesma política de Incr.
func Observe(ctx context.Context, p Provider, name string, value float64, tags ...string) {
	if p == nil {
		return
	}
	if err := p.Histogram(name, value, tags); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("metric", name).Msg("failed to send metric")
	}
}
