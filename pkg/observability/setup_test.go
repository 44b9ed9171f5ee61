package observability

import (
	"testing"

	"github.com/raywall/retail-services/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsd struct {
	mock.Mock
}

func (m *mockStatsd) Count(name string, value int64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Gauge(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Histogram(name string, value float64, tags []string, rate float64) error {
	return m.Called(name, value, tags, rate).Error(0)
}

func (m *mockStatsd) Flush() error { return m.Called().Error(0) }
func (m *mockStatsd) Close() error { return m.Called().Error(0) }

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: false},
		}

		provider, err := SetupMetrics(cfg, "")
		require.NoError(t, err)
		assert.IsType(t, &NoopProvider{}, provider)
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "retail.",
			},
		}

		provider, err := SetupMetrics(cfg, config.HandlerCreateOrder)
		require.NoError(t, err)

		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "Esperado DatadogProvider, recebido %T", provider)
		assert.Equal(t, []string{"handler:create-order"}, dd.tags)
		assert.NoError(t, dd.Close())
	})
}

func TestDatadogProvider_PrependsGlobalTags(t *testing.T) {
	client := new(mockStatsd)
	p := &DatadogProvider{client: client, tags: []string{"handler:is-item-in-stock"}}

	client.On("Count", "stock.check", int64(1), []string{"handler:is-item-in-stock", "outcome:in_stock"}, 1.0).Return(nil)
	client.On("Histogram", "handler.latency_ms", 3.5, []string{"handler:is-item-in-stock"}, 1.0).Return(nil)
	client.On("Gauge", "g", 2.0, []string{"handler:is-item-in-stock"}, 1.0).Return(nil)
	client.On("Flush").Return(nil)

	require.NoError(t, p.Count("stock.check", 1, []string{"outcome:in_stock"}))
	require.NoError(t, p.Histogram("handler.latency_ms", 3.5, nil))
	require.NoError(t, p.Gauge("g", 2, nil))
	require.NoError(t, p.Flush())

	client.AssertExpectations(t)
}

func TestDatadogProvider_NoGlobalTags(t *testing.T) {
	client := new(mockStatsd)
	p := &DatadogProvider{client: client}

	tags := []string{"outcome:not_found"}
	client.On("Count", "stock.check", int64(1), tags, 1.0).Return(nil)

	require.NoError(t, p.Count("stock.check", 1, tags))
	client.AssertExpectations(t)
}
