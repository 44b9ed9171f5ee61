package config

// Nomes dos handlers aceitos em HANDLER. Cada função Lambda da loja roda o
// mesmo binário e escolhe a operação por essa variável.
const (
	HandlerCreateStoreItem = "create-store-item"
	HandlerIsItemInStock   = "is-item-in-stock"
	HandlerCheckItemStock  = "check-item-stock"
	HandlerUpdateItemStock = "update-item-stock"
	HandlerCreateOrder     = "create-order"
)

// Backends de tabela aceitos em TABLE_BACKEND.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config representa a configuração do processo, lida uma única vez na
// inicialização a partir das variáveis de ambiente.
type Config struct {
	Runtime string    `env:"RUNTIME" envDefault:"lambda" validate:"oneof=lambda local"`
	Handler string    `env:"HANDLER" validate:"omitempty,oneof=create-store-item is-item-in-stock check-item-stock update-item-stock create-order"`
	Port    int       `env:"PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	Table   TableConf
	AWS     AWSConf
	Logging LoggingConf
	Metrics MetricsConf
	Orders  OrdersConf
}

// TableConf identifica a tabela compartilhada. Name tem precedência; se vier
// vazio, Parameter aponta para um parâmetro do SSM que contém o nome.
type TableConf struct {
	Name      string `env:"STORE_TABLE_NAME" validate:"required_without=Parameter"`
	Parameter string `env:"STORE_TABLE_PARAMETER"`
	Backend   string `env:"TABLE_BACKEND" envDefault:"dynamodb" validate:"oneof=dynamodb memory"`
}

type AWSConf struct {
	Region           string `env:"AWS_REGION"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"`
}

type LoggingConf struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool   `env:"DD_ENABLED"`
	Addr      string `env:"DD_AGENT_HOST" envDefault:"localhost:8125" validate:"required_if=Enabled true"`
	Namespace string `env:"DD_NAMESPACE" envDefault:"retail."`
}

// OrdersConf configura a notificação opcional de pedidos criados.
type OrdersConf struct {
	EventsQueueURL string `env:"ORDER_EVENTS_QUEUE_URL" validate:"omitempty,url"`
}
