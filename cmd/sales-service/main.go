package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmehra2102/inventory-sales/internal/config"
	"github.com/dmehra2102/inventory-sales/internal/platform"
	"github.com/dmehra2102/inventory-sales/internal/sales/application"
	salesgrpc "github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/grpc"
	saleshttp "github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/http"
	"github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/memory"
	salespg "github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/postgres"
	"github.com/dmehra2102/inventory-sales/pkg/auth"
	"github.com/dmehra2102/inventory-sales/pkg/logging"
	"github.com/dmehra2102/inventory-sales/pkg/outbox"
	"github.com/dmehra2102/inventory-sales/pkg/ratelimit"
	"github.com/dmehra2102/inventory-sales/pkg/shutdown"
	"github.com/dmehra2102/inventory-sales/pkg/tracing"
)

func main() {
	cfg, err := config.LoadSales()
	log := logging.New(cfg.LogLevel)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var hooks []shutdown.Hook

	tp, err := tracing.Init(ctx, "sales-service", cfg.TraceExportURL, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	hooks = append(hooks, shutdown.Hook{Name: "tracer", Fn: tp.Shutdown})

	var pool *pgxpool.Pool
	var repo application.OrderRepository = memory.NewRepository()
	if cfg.StoreDriver == config.StoreDriverPostgres {
		pool, err = pgxpool.New(ctx, cfg.PGURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		hooks = append(hooks, shutdown.Hook{Name: "postgres", Fn: func(context.Context) error { pool.Close(); return nil }})
		if err := salespg.EnsureSchema(ctx, pool); err != nil {
			log.Error("pg schema failed", "err", err)
			os.Exit(1)
		}
		repo = salespg.NewRepository(log, pool)
	}

	publisher, err := platform.NewPublisher(cfg.Common, "sales-service")
	if err != nil {
		log.Error("publisher init failed", "err", err)
		os.Exit(1)
	}
	hooks = append(hooks, shutdown.Hook{Name: "publisher", Fn: func(context.Context) error { return publisher.Close() }})

	// Stock query
	var stock application.StockQuery
	switch cfg.StockQueryTransport {
	case config.TransportHTTP:
		var tokens saleshttp.TokenSource
		if cfg.JWTKey != "" {
			tokens = auth.NewTokenSource([]byte(cfg.JWTKey), "sales-service", time.Hour)
		}
		stock = saleshttp.NewInventoryClient(log, cfg.InventoryHTTPURL, tokens)
	default:
		inv, err := salesgrpc.NewInventoryClient(log, cfg.InventoryGRPCAddr)
		if err != nil {
			log.Error("inventory client failed", "err", err)
			os.Exit(1)
		}
		hooks = append(hooks, shutdown.Hook{Name: "inventory-client", Fn: func(context.Context) error { return inv.Close() }})
		stock = inv
	}

	// Reconciliation of stock updates lost after commit
	var reconciler application.Reconciler = application.NewLogReconciler(log)
	if cfg.ReconcileMode == config.ReconcileOutbox {
		store := salespg.NewOutboxStore(log, pool, cfg.RelayMaxRetries)
		reconciler = application.NewOutboxReconciler(log, store)

		relayID, _ := os.Hostname()
		relay := outbox.NewRelay(log, store, outbox.NewDispatcher(log, publisher), "sales-relay-"+relayID, cfg.RelayInterval)
		relayDone := make(chan struct{})
		go func() {
			defer close(relayDone)
			if err := relay.Run(ctx); err != nil {
				log.Error("relay stopped with error", "err", err)
			}
		}()
		hooks = append(hooks, shutdown.Hook{Name: "relay", Fn: func(ctx context.Context) error {
			select {
			case <-relayDone:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}})
	}

	coordinator := application.NewCoordinator(log, repo, stock, publisher, reconciler, application.CoordinatorConfig{
		QueryTimeout:   cfg.StockQueryTimeout,
		PublishTimeout: cfg.PublishTimeout,
	})
	handler := saleshttp.NewHandler(log, coordinator, application.NewService(repo))

	// HTTP server
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(ratelimit.Middleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(auth.Bearer([]byte(cfg.JWTKey)))
	r.Mount("/", handler.Routes())
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      otelhttp.NewHandler(r, "sales-http"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr, "stock_query", cfg.StockQueryTransport, "reconcile", cfg.ReconcileMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()
	hooks = append(hooks, shutdown.Hook{Name: "http", Fn: srv.Shutdown})

	<-ctx.Done()
	if err := shutdown.Run(log, cfg.ShutdownTimeout, hooks...); err != nil {
		os.Exit(1)
	}
	log.Info("sales-service shutdown complete")
}
