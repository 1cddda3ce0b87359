package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
)

// Service orchestrates the storefront to POS relay use cases.
type Service struct {
	template  *pos.Order
	store     ports.ArtifactStore
	delivery  ports.DeliveryOrchestrator
	receiptID func() string
}

// Option configures optional collaborators.
type Option func(*Service)

// WithDelivery hands every stored artifact to the POS delivery pipeline.
func WithDelivery(delivery ports.DeliveryOrchestrator) Option {
	return func(s *Service) {
		s.delivery = delivery
	}
}

// WithReceiptIDs overrides the receipt id generator.
func WithReceiptIDs(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.receiptID = fn
		}
	}
}

// NewService wires the relay service. template is the POS skeleton every
// transformation starts from; nil means an empty order.
func NewService(template *pos.Order, store ports.ArtifactStore, opts ...Option) *Service {
	if template == nil {
		template = &pos.Order{}
	}
	s := &Service{
		template:  template.Clone(),
		store:     store,
		receiptID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// HandleWebhook decodes the embedded event, transcodes it, stores the
// artifact and schedules delivery. When delivery fails the stored artifact
// is returned together with an ErrDelivery error.
func (s *Service) HandleWebhook(ctx context.Context, input types.WebhookInput) (*types.ArtifactProjection, error) {
	event, err := storefront.ParseOrderEvent(input.Payload)
	if err != nil {
		return nil, mapError(err)
	}
	result, err := s.transcode(event.Order())
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: artifact store not configured", ErrArtifactWrite)
	}
	saved, err := s.store.Save(ctx, types.Artifact{
		OrderID:       result.Order.ID,
		ReceiptID:     s.receiptID(),
		EventID:       event.ID,
		SourceOrderID: event.Order().ID.String(),
		Body:          result.Body,
		Unsupported:   result.Unsupported,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	if s.delivery == nil {
		return saved, nil
	}
	if err := s.delivery.Deliver(ctx, types.DeliveryInput{
		OrderID:   saved.Entity.OrderID,
		ReceiptID: saved.Entity.ReceiptID,
		EventID:   saved.Entity.EventID,
		Body:      saved.Entity.Body,
	}); err != nil {
		return saved, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return saved, nil
}

// Preview transcodes an order event without storing or delivering it.
func (s *Service) Preview(_ context.Context, payload []byte) (*types.TranscodeResult, error) {
	event, err := storefront.ParseOrderEvent(payload)
	if err != nil {
		return nil, mapError(err)
	}
	return s.transcode(event.Order())
}

// GetArtifact loads a stored artifact by POS order id.
func (s *Service) GetArtifact(ctx context.Context, orderID int64) (*types.ArtifactProjection, error) {
	if s.store == nil {
		return nil, ports.ErrNotFound
	}
	return s.store.Get(ctx, orderID)
}

func (s *Service) transcode(order *storefront.Order) (*types.TranscodeResult, error) {
	target, report, err := TransformWithReport(order, s.template)
	if err != nil {
		return nil, mapError(err)
	}
	body, err := pos.Serialize(target)
	if err != nil {
		return nil, fmt.Errorf("serialize pos order %d: %w", target.ID, err)
	}
	return &types.TranscodeResult{
		Order:       target,
		Body:        body,
		Unsupported: report.Unsupported(),
	}, nil
}

// IsRejected reports whether err means the payload itself was unusable, as
// opposed to a failure while storing or delivering it.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrMissingDerivedValue)
}

var _ ports.Service = (*Service)(nil)
