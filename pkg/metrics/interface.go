package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Métricas emitidas pelas operações da loja.
const (
	StoreItemCreated = "store_item.created"
	StockCheck       = "stock.check"
	StockDecremented = "stock.decremented"
	StockNegative    = "stock.negative"
	OrderCreated     = "order.created"
	OrderNotifyError = "order.notify_error"
	HandlerError     = "handler.error"
	HandlerLatency   = "handler.latency_ms"
)
