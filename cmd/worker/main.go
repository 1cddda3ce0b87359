package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-order-bridge/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-order-bridge/internal/platform/observability"
	deliveryactivities "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/activities/delivery"
	deliveryworkflows "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/workflows/delivery"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-bridge-worker"
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

	dispatcher, release, err := api.BuildDispatcher(cfg, logger)
	if err != nil {
		logger.Error("failed to configure POS dispatcher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer release()
	deliveryActivities := deliveryactivities.NewActivities(dispatcher)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, deliveryworkflows.DeliveryTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(deliveryworkflows.DeliveryWorkflow, workflow.RegisterOptions{Name: deliveryworkflows.DeliveryWorkflowName})
	w.RegisterActivityWithOptions(deliveryActivities.DispatchOrder, activity.RegisterOptions{Name: deliveryactivities.DispatchOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", deliveryworkflows.DeliveryTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
