package ports

import (
	"context"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
)

// Service defines the relay use cases exposed to adapters (inbound/driving port).
type Service interface {
	HandleWebhook(ctx context.Context, input types.WebhookInput) (*types.ArtifactProjection, error)
	Preview(ctx context.Context, payload []byte) (*types.TranscodeResult, error)
	GetArtifact(ctx context.Context, orderID int64) (*types.ArtifactProjection, error)
}
