package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	bridgeserver "github.com/Apurer/go-gin-order-bridge/go"
	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/filesystem"
	relayobs "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/observability"
	relaypostgres "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/persistence/postgres"
	relayworkflows "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/workflows"
	relayapp "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/platform/metrics"
	"github.com/Apurer/go-gin-order-bridge/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-bridge/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-bridge/internal/platform/postgres"
)

const serviceName = "order-bridge-api"

// Run boots the order bridge HTTP API with observability, artifact storage,
// and POS delivery wired.
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

	template, err := LoadTemplate(cfg.TemplatePath)
	if err != nil {
		return err
	}
	if template == nil {
		logger.Warn("POS_TEMPLATE_PATH not set, mapping onto an empty POS order")
	}

	store, cleanupStore, err := buildArtifactStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupStore()

	delivery, cleanupDelivery, err := buildDelivery(cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanupDelivery()

	coreService := relayapp.NewService(template, store, relayapp.WithDelivery(delivery))
	relayService := relayobs.New(
		coreService,
		relayobs.WithLogger(logger),
		relayobs.WithTracer(instruments.Tracer("internal.relay.application")),
		relayobs.WithMeter(instruments.Meter("internal.relay.application")),
	)
	registry := metrics.NewRegistry()

	handlers := bridgeserver.ApiHandleFunctions{
		RelayAPI:  bridgeserver.NewRelayAPI(relayService, registry, logger),
		SystemAPI: bridgeserver.NewSystemAPI(registry),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := bridgeserver.NewRouterWithGinEngine(engine, handlers)

	addr := cfg.Addr()
	logger.Info("order bridge API listening", slog.String("addr", addr), slog.Bool("tls", cfg.TLSEnabled()))
	if cfg.TLSEnabled() {
		err = router.RunTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = router.Run(addr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("order bridge API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// LoadTemplate reads the POS order skeleton at path. An empty path yields a
// nil template, which the transformer treats as an empty order.
func LoadTemplate(path string) (*pos.Order, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read POS template: %w", err)
	}
	template, err := pos.ParseOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("parse POS template %s: %w", path, err)
	}
	return template, nil
}

// buildArtifactStore writes .bok files under ARTIFACT_DIR and mirrors them to
// PostgreSQL when a DSN is configured and reachable.
func buildArtifactStore(ctx context.Context, cfg Config, logger *slog.Logger) (relayports.ArtifactStore, func(), error) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	var opts []filesystem.Option
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("artifact migrations failed, artifacts are kept on disk only", slog.String("error", err.Error()))
		} else {
			opts = append(opts, filesystem.WithMirror(relaypostgres.NewArtifactStore(db)))
			logger.Info("artifact store mirrored to postgres")
		}
	}
	store, err := filesystem.NewArtifactStore(cfg.ArtifactDir, opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("artifact directory %s: %w", cfg.ArtifactDir, err)
	}
	logger.Info("artifact store configured", slog.String("dir", cfg.ArtifactDir))
	return store, cleanup, nil
}

// buildDelivery prefers durable Temporal delivery and falls back to
// dispatching inline when the cluster is disabled or unreachable.
func buildDelivery(cfg Config, instruments *platformobservability.Instruments) (relayports.DeliveryOrchestrator, func(), error) {
	logger := effectiveLogger(instruments)
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err == nil {
		logger.Info("Temporal delivery enabled", slog.String("namespace", cfg.TemporalNamespace))
		return relayworkflows.NewTemporalDelivery(temporalClient), temporalClient.Close, nil
	}
	logger.Warn("Temporal workflows unavailable, dispatching inline", slog.String("error", err.Error()))
	dispatcher, closeDispatcher, err := BuildDispatcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return relayworkflows.NewInlineDelivery(dispatcher), closeDispatcher, nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
