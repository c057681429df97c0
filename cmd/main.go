package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	allocationapp "github.com/muhammadheryan/stock-allocation/application/allocation"
	orderapp "github.com/muhammadheryan/stock-allocation/application/order"
	stockapp "github.com/muhammadheryan/stock-allocation/application/stock"
	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/muhammadheryan/stock-allocation/cmd/database"
	redisclient "github.com/muhammadheryan/stock-allocation/cmd/redis"
	allocationRepo "github.com/muhammadheryan/stock-allocation/repository/allocation"
	"github.com/muhammadheryan/stock-allocation/repository/lock"
	orderRepo "github.com/muhammadheryan/stock-allocation/repository/order"
	stockLotRepo "github.com/muhammadheryan/stock-allocation/repository/stocklot"
	txRepo "github.com/muhammadheryan/stock-allocation/repository/tx"
	"github.com/muhammadheryan/stock-allocation/thirdparty/rabbitmq"
	"github.com/muhammadheryan/stock-allocation/transport"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"github.com/muhammadheryan/stock-allocation/utils/metrics"
	"github.com/muhammadheryan/stock-allocation/utils/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracerProvider(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Fatal("err init tracing", zap.Error(err))
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			_ = tp.Shutdown(sctx)
		}()
	}

	// Connect to database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Cross-instance order lock on top of the per-order guard row the engine takes in its
	// own transaction; without Redis the guard row alone serializes same-order calls
	locker := lock.NoopLocker()
	if cfg.Redis.Enabled {
		rc, err := redisclient.New(cfg.Redis)
		if err != nil {
			logger.Fatal("err connect redis", zap.Error(err))
		}
		defer rc.Close()
		locker = lock.NewOrderLocker(rc, lock.Options{
			Expiry:     cfg.Lock.Expiry,
			Tries:      cfg.Lock.Tries,
			RetryDelay: cfg.Lock.RetryDelay,
		})
	}

	var auditor allocationapp.Auditor = allocationapp.NoopAuditor{}
	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL(), cfg.RabbitMQ.AuditExchange)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		defer publisher.Close()
		auditor = publisher
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	allocationMetrics := metrics.NewAllocationMetrics(registry)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	if cfg.Database.Driver == "mysql" {
		// row locks taken with FOR UPDATE; skip gap locks on the lot index
		TxRepo = txRepo.NewTxRepositoryWithIsolation(db, sql.LevelReadCommitted)
	}
	StockLotRepo := stockLotRepo.NewStockLotRepository(db)
	AllocationRepo := allocationRepo.NewAllocationRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)

	// Initialize application layers
	AllocationApp := allocationapp.NewAllocationApp(cfg, TxRepo, StockLotRepo, AllocationRepo, locker, auditor, allocationMetrics)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, AllocationApp, allocationMetrics)
	StockApp := stockapp.NewStockApp(StockLotRepo)

	if cfg.RabbitMQ.Enabled {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL(), cfg.RabbitMQ.OrderEventsQueue, OrderApp)
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			logger.Fatal("err start order events consumer", zap.Error(err))
		}
		logger.Info("order events consumer running", zap.String("queue", cfg.RabbitMQ.OrderEventsQueue))
	}

	if cfg.Server.InternalAPIKey == "" {
		logger.Warn("INTERNAL_API_KEY is empty, /v1 routes are unauthenticated")
	}

	httpTransport := transport.NewTransport(&transport.RestHandler{
		OrderApp:      OrderApp,
		AllocationApp: AllocationApp,
		StockApp:      StockApp,
		HealthCheck:   db.PingContext,
	}, cfg.Server.InternalAPIKey, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
