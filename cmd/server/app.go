package main

import (
	"context"
	"fmt"

	"github.com/raywall/retail-services/dyndb"
	"github.com/raywall/retail-services/pkg/awsconf"
	"github.com/raywall/retail-services/pkg/config"
	"github.com/raywall/retail-services/pkg/handler"
	"github.com/raywall/retail-services/pkg/inventory"
	"github.com/raywall/retail-services/pkg/metrics"
	"github.com/raywall/retail-services/pkg/orders"
	"github.com/raywall/retail-services/pkg/transport"
	"github.com/rs/zerolog/log"
)

// Nome usado pela tabela em memória quando STORE_TABLE_NAME não é informado.
const defaultMemoryTable = "storeDB"

var loadAWS = awsconf.Load

// app guarda os handlers montados uma única vez e reaproveitados entre invocações.
type app struct {
	metrics   metrics.Provider
	registrar *handler.ItemRegistrar
	reader    *handler.StockReader
	writer    *handler.StockWriter
	recorder  *handler.OrderRecorder
}

func tableConfig[T any](name string) dyndb.TableConfig[T] {
	return dyndb.TableConfig[T]{TableName: name, HashKey: "PK", SortKey: "SK"}
}

func newApp(ctx context.Context, cfg *config.Config, mp metrics.Provider) (*app, error) {
	var (
		items      dyndb.Store[inventory.StoreItem]
		orderStore dyndb.Store[orders.Order]
		orderOpts  []orders.Option
	)

	switch cfg.Table.Backend {
	case config.BackendMemory:
		name := cfg.Table.Name
		if name == "" {
			name = defaultMemoryTable
		}
		log.Warn().Str("table", name).Msg("usando tabela em memória; os dados não são persistidos")
		items = dyndb.NewMemoryStore(tableConfig[inventory.StoreItem](name))
		orderStore = dyndb.NewMemoryStore(tableConfig[orders.Order](name))

	default:
		awsCfg, err := loadAWS(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		clients := awsconf.NewClients(awsCfg, cfg.AWS)

		name, err := awsconf.ResolveTableName(ctx, clients.SSM, cfg.Table)
		if err != nil {
			return nil, err
		}
		log.Info().Str("table", name).Msg("tabela resolvida")

		items = dyndb.New(clients.DynamoDB, tableConfig[inventory.StoreItem](name))
		orderStore = dyndb.New(clients.DynamoDB, tableConfig[orders.Order](name))

		if url := cfg.Orders.EventsQueueURL; url != "" {
			orderOpts = append(orderOpts, orders.WithNotifier(orders.NewSQSNotifier(clients.SQS, url)))
		}
	}

	inv := inventory.NewService(items, mp)
	ord := orders.NewService(orderStore, mp, orderOpts...)

	return &app{
		metrics:   mp,
		registrar: handler.NewItemRegistrar(inv),
		reader:    handler.NewStockReader(inv),
		writer:    handler.NewStockWriter(inv),
		recorder:  handler.NewOrderRecorder(ord),
	}, nil
}

// lambdaHandler devolve a operação servida por esta função Lambda.
func (a *app) lambdaHandler(name string) (any, error) {
	switch name {
	case config.HandlerCreateStoreItem:
		return transport.WrapAPIGateway(name, a.metrics, a.registrar.Handle), nil
	case config.HandlerIsItemInStock:
		return transport.WrapAPIGateway(name, a.metrics, a.reader.HandleHTTP), nil
	case config.HandlerCreateOrder:
		return transport.WrapAPIGateway(name, a.metrics, a.recorder.Handle), nil
	case config.HandlerCheckItemStock:
		return transport.WrapWorkflow(name, a.metrics, a.reader.HandleWorkflow), nil
	case config.HandlerUpdateItemStock:
		return transport.WrapWorkflow(name, a.metrics, a.writer.HandleWorkflow), nil
	default:
		return nil, fmt.Errorf("handler desconhecido: %q", name)
	}
}

// routes expõe todas as operações no runtime local.
func (a *app) routes() transport.Routes {
	return transport.Routes{
		CreateStoreItem: transport.WrapAPIGateway(config.HandlerCreateStoreItem, a.metrics, a.registrar.Handle),
		IsItemInStock:   transport.WrapAPIGateway(config.HandlerIsItemInStock, a.metrics, a.reader.HandleHTTP),
		CreateOrder:     transport.WrapAPIGateway(config.HandlerCreateOrder, a.metrics, a.recorder.Handle),
		CheckItemStock:  transport.WrapWorkflow(config.HandlerCheckItemStock, a.metrics, a.reader.HandleWorkflow),
		UpdateItemStock: transport.WrapWorkflow(config.HandlerUpdateItemStock, a.metrics, a.writer.HandleWorkflow),
	}
}
