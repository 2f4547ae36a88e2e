package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/choufli-storefront/internal/app/api"
	orderactivities "github.com/Apurer/choufli-storefront/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/choufli-storefront/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/choufli-storefront/internal/platform/observability"
	platformtemporal "github.com/Apurer/choufli-storefront/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-intake-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanupRepo := api.BuildOrderService(ctx, cfg, instruments)
	defer cleanupRepo()
	activities := orderactivities.NewActivities(orderService)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal(), logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.IntakeTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.IntakeWorkflow, workflow.RegisterOptions{Name: orderworkflows.IntakeWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.IntakeTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
