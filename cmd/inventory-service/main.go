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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmehra2102/inventory-sales/internal/config"
	"github.com/dmehra2102/inventory-sales/internal/inventory/application"
	invgrpc "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/grpc"
	invhttp "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/http"
	"github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/memory"
	inventoryDB "github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/postgres"
	"github.com/dmehra2102/inventory-sales/internal/platform"
	"github.com/dmehra2102/inventory-sales/pkg/auth"
	"github.com/dmehra2102/inventory-sales/pkg/idempotency"
	"github.com/dmehra2102/inventory-sales/pkg/logging"
	"github.com/dmehra2102/inventory-sales/pkg/ratelimit"
	"github.com/dmehra2102/inventory-sales/pkg/shutdown"
	"github.com/dmehra2102/inventory-sales/pkg/tracing"
)

func main() {
	cfg, err := config.LoadInventory()
	log := logging.New(cfg.LogLevel)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var hooks []shutdown.Hook

	tp, err := tracing.Init(ctx, "inventory-service", cfg.TraceExportURL, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	hooks = append(hooks, shutdown.Hook{Name: "tracer", Fn: tp.Shutdown})

	var repo application.ProductRepository = memory.NewRepository()
	if cfg.StoreDriver == config.StoreDriverPostgres {
		pool, err := pgxpool.New(ctx, cfg.PGURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		hooks = append(hooks, shutdown.Hook{Name: "postgres", Fn: func(context.Context) error { pool.Close(); return nil }})
		if err := inventoryDB.EnsureSchema(ctx, pool); err != nil {
			log.Error("pg schema failed", "err", err)
			os.Exit(1)
		}
		repo = inventoryDB.NewRepository(log, pool)
	}
	svc := application.NewService(repo)

	var dedup application.Deduplicator
	if cfg.DedupEnabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		hooks = append(hooks, shutdown.Hook{Name: "redis", Fn: func(context.Context) error { return rdb.Close() }})
		dedup = idempotency.NewStore(rdb, cfg.DedupTTL, "stock_update")
		log.Info("stock update dedup enabled", "redis", cfg.RedisAddr, "ttl", cfg.DedupTTL)
	}

	// gRPC stock query
	gs, err := invgrpc.Run(cfg.GRPCAddr, invgrpc.NewServer(log, svc))
	if err != nil {
		log.Error("grpc server failed", "err", err)
		os.Exit(1)
	}
	log.Info("grpc listening", "addr", cfg.GRPCAddr)
	hooks = append(hooks, shutdown.Hook{Name: "grpc", Fn: func(context.Context) error { gs.GracefulStop(); return nil }})

	// Stock update consumer
	sub, err := platform.NewSubscriber(log, cfg)
	if err != nil {
		log.Error("subscriber init failed", "err", err)
		os.Exit(1)
	}
	consumer := application.NewStockUpdateConsumer(log, svc, dedup)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := consumer.Run(ctx, sub); err != nil {
			log.Error("consumer stopped", "err", err)
			cancel()
		}
	}()
	hooks = append(hooks, shutdown.Hook{Name: "consumer", Fn: func(ctx context.Context) error {
		select {
		case <-consumerDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}})

	// Product API
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(ratelimit.Middleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(auth.Bearer([]byte(cfg.JWTKey)))
	r.Mount("/", invhttp.NewHandler(log, svc).Routes())
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      otelhttp.NewHandler(r, "inventory-http"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
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
	log.Info("inventory-service shutdown complete")
}
