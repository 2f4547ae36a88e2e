package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	orderhandlers "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/http/handlers"
	ordersmemory "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/observability"
	ordersgorm "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/persistence/gormdb"
	ordersworkflows "github.com/Apurer/choufli-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/choufli-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
	"github.com/Apurer/choufli-storefront/internal/platform/database"
	"github.com/Apurer/choufli-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/choufli-storefront/internal/platform/observability"
	platformtemporal "github.com/Apurer/choufli-storefront/internal/platform/temporal"
)

const serviceName = "order-intake-api"

// Run boots the order intake HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupRepo := BuildOrderService(ctx, cfg, instruments)
	defer cleanupRepo()

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := platformtemporal.Dial(cfg.Temporal(), logger, instruments.Tracer("temporal-client")); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(
		orderhandlers.NewOrderAPI(orderService, orderWorkflows, logger),
		RouterOptions{ServiceName: serviceName, Config: cfg, Logger: logger},
	)
	return serve(ctx, cfg.Addr(), router, logger)
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("order intake API listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("order intake API exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("order intake API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// BuildOrderService wires the order repository selected by cfg behind the
// application service and its observability decorator. Without a reachable
// database it falls back to memory.
func BuildOrderService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	logger := instruments.Logger
	repo, cleanup := buildOrderRepository(ctx, cfg.Database(), logger)
	return ordersobs.New(
		ordersapp.NewService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	), cleanup
}

func buildOrderRepository(ctx context.Context, cfg database.Config, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := database.ConnectWithFallback(ctx, cfg, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate orders schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured", slog.String("driver", cfg.Driver()))
	return ordersgorm.NewRepository(db), cleanup
}
