package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	relayapp "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application"
	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/schema"
)

const tracerName = "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/observability/service"

// Service decorates the relay service with tracing, logging, and metrics.
type Service struct {
	inner   relayports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core relay service.
func New(inner relayports.Service, opts ...Option) relayports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) HandleWebhook(ctx context.Context, input types.WebhookInput) (*types.ArtifactProjection, error) {
	ctx, span := s.tracer.Start(ctx, "RelayService.HandleWebhook",
		trace.WithAttributes(attribute.String("webhook.event_type", input.EventType), attribute.Int("webhook.payload_bytes", len(input.Payload))))
	defer span.End()

	s.logInfo(ctx, "handling order webhook", slog.String("event_type", input.EventType), slog.String("instance_id", input.InstanceID))
	result, err := s.inner.HandleWebhook(ctx, input)
	if err != nil {
		s.metrics.recordOutcome(ctx, outcome(err))
		attrs := failureAttrs(err)
		if result != nil {
			attrs = append(attrs, slog.Int64("order.id", result.Entity.OrderID))
		}
		return result, s.handleError(ctx, span, err, "failed to handle order webhook", attrs...)
	}
	span.SetAttributes(attribute.Int64("order.id", result.Entity.OrderID), attribute.String("order.receipt_id", result.Entity.ReceiptID))
	s.metrics.recordOutcome(ctx, "stored")
	s.metrics.recordUnsupported(ctx, len(result.Entity.Unsupported))
	for _, notice := range result.Entity.Unsupported {
		s.logWarn(ctx, "mapping skipped", slog.Int64("order.id", result.Entity.OrderID), slog.String("notice", notice))
	}
	s.logInfo(ctx, "order stored", slog.Int64("order.id", result.Entity.OrderID), slog.String("receipt_id", result.Entity.ReceiptID))
	return result, nil
}

func (s *Service) Preview(ctx context.Context, payload []byte) (*types.TranscodeResult, error) {
	ctx, span := s.tracer.Start(ctx, "RelayService.Preview", trace.WithAttributes(attribute.Int("webhook.payload_bytes", len(payload))))
	defer span.End()

	result, err := s.inner.Preview(ctx, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to preview order", failureAttrs(err)...)
	}
	span.SetAttributes(attribute.Int64("order.id", result.Order.ID), attribute.Int("order.items", len(result.Order.OrderItems)))
	s.logInfo(ctx, "order previewed", slog.Int64("order.id", result.Order.ID))
	return result, nil
}

func (s *Service) GetArtifact(ctx context.Context, orderID int64) (*types.ArtifactProjection, error) {
	ctx, span := s.tracer.Start(ctx, "RelayService.GetArtifact", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetArtifact(ctx, orderID)
	if err != nil {
		if errors.Is(err, relayports.ErrNotFound) {
			s.logInfo(ctx, "artifact not found", slog.Int64("order.id", orderID))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to load artifact", slog.Int64("order.id", orderID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

// failureAttrs lists every schema fault so operators see the whole picture
// from one log line.
func failureAttrs(err error) []slog.Attr {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	return []slog.Attr{
		slog.String("model", verr.Model),
		slog.Any("fault_paths", verr.Paths()),
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, relayapp.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, relayapp.ErrMissingDerivedValue):
		return "missing_value"
	case errors.Is(err, relayapp.ErrArtifactWrite):
		return "write_failed"
	case errors.Is(err, relayapp.ErrDelivery):
		return "delivery_failed"
	default:
		return "error"
	}
}

type serviceMetrics struct {
	webhooks    metric.Int64Counter
	unsupported metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	webhooks, _ := m.Int64Counter("relay.service.webhooks", metric.WithDescription("Order webhooks handled, by outcome"))
	unsupported, _ := m.Int64Counter("relay.service.unsupported_mappings", metric.WithDescription("Mappings skipped for lack of a rule"))
	return serviceMetrics{webhooks: webhooks, unsupported: unsupported}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, outcome string) {
	if m.webhooks != nil {
		m.webhooks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func (m serviceMetrics) recordUnsupported(ctx context.Context, n int) {
	if m.unsupported != nil && n > 0 {
		m.unsupported.Add(ctx, int64(n))
	}
}

var _ relayports.Service = (*Service)(nil)
