//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invapp "github.com/dmehra2102/inventory-sales/internal/inventory/application"
	invdomain "github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	invgrpc "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/grpc"
	invpg "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/postgres"
	salesapp "github.com/dmehra2102/inventory-sales/internal/sales/application"
	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	salesgrpc "github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/grpc"
	salespg "github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/postgres"
	"github.com/dmehra2102/inventory-sales/pkg/outbox"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

func TestStockFlowOverPostgresAndKafka(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	env, err := Setup(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { env.Teardown(context.Background()) })
	require.NoError(t, env.CreateTopic(stockupdate.Channel))

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, invpg.EnsureSchema(ctx, pool))
	require.NoError(t, salespg.EnsureSchema(ctx, pool))

	// Inventory
	inv := invapp.NewService(invpg.NewRepository(log, pool))
	p, err := inv.CreateProduct(ctx, invdomain.Product{Name: "Widget", Price: decimal.RequireFromString("10.00"), StockQuantity: 100})
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	gs := invgrpc.NewGRPCServer(invgrpc.NewServer(log, inv))
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	reader := stockupdate.NewKafkaReader(env.KAddr, stockupdate.Channel, "inventory-it")
	consumer := invapp.NewStockUpdateConsumer(log, inv, nil)
	go func() { _ = consumer.Run(ctx, stockupdate.NewKafkaSubscriber(log, reader, 3, 100*time.Millisecond)) }()

	// Sales
	stock, err := salesgrpc.NewInventoryClient(log, lis.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stock.Close() })
	publisher := stockupdate.NewKafkaPublisher(stockupdate.NewKafkaWriter(env.KAddr), stockupdate.Channel)
	t.Cleanup(func() { _ = publisher.Close() })
	orders := salespg.NewRepository(log, pool)
	outboxStore := salespg.NewOutboxStore(log, pool, 3)
	coord := salesapp.NewCoordinator(log, orders, stock, publisher, salesapp.NewOutboxReconciler(log, outboxStore),
		salesapp.CoordinatorConfig{QueryTimeout: 5 * time.Second, PublishTimeout: 10 * time.Second})

	stockNow := func() int {
		got, err := inv.GetProduct(ctx, p.ID)
		if err != nil {
			return -1
		}
		return got.StockQuantity
	}

	o, err := coord.PlaceOrder(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, o.Status)
	assert.True(t, decimal.RequireFromString("50.00").Equal(o.TotalPrice))
	assert.Eventually(t, func() bool { return stockNow() == 95 }, 90*time.Second, 200*time.Millisecond)

	_, err = coord.PlaceOrder(ctx, p.ID, 150)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	all, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// A parked stock update reaches Inventory through the relay.
	payload, err := stockupdate.Encode(stockupdate.NewMessage(p.ID, 10))
	require.NoError(t, err)
	require.NoError(t, outboxStore.Enqueue(ctx, outbox.Event{AggregateType: "order", AggregateID: "manual", Type: outbox.EventStockUpdate, Payload: payload}))
	outbox.NewRelay(log, outboxStore, outbox.NewDispatcher(log, publisher), "it", time.Second).Tick(ctx)
	assert.Eventually(t, func() bool { return stockNow() == 85 }, 30*time.Second, 200*time.Millisecond)

	var status string
	require.NoError(t, pool.QueryRow(ctx, `SELECT status FROM outbox WHERE aggregate_id='manual'`).Scan(&status))
	assert.Equal(t, string(outbox.StatusSent), status)
}
