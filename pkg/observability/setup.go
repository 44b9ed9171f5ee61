package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/retail-services/pkg/config"
	"github.com/raywall/retail-services/pkg/metrics"
)

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// statsdClient é o subconjunto de statsd.ClientInterface usado pelo provider.
type statsdClient interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	Flush() error
	Close() error
}

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client statsdClient
	tags   []string
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), d.with(tags), 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, d.with(tags), 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, d.with(tags), 1)
}

// Flush força o envio do buffer. Em Lambda deve ser chamado ao fim de cada
// invocação, antes do ambiente ser congelado.
func (d *DatadogProvider) Flush() error {
	return d.client.Flush()
}

func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

func (d *DatadogProvider) with(tags []string) []string {
	if len(d.tags) == 0 {
		return tags
	}
	out := make([]string, 0, len(d.tags)+len(tags))
	out = append(out, d.tags...)
	return append(out, tags...)
}

// SetupMetrics inicializa o provedor correto baseado na configuração de ambiente.
// handler é adicionado como tag global quando informado.
func SetupMetrics(cfg config.MetricsConf, handler string) (metrics.Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	// Configurações do cliente StatsD
	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	p := &DatadogProvider{client: client}
	if handler != "" {
		p.tags = []string{"handler:" + handler}
	}
	return p, nil
}
