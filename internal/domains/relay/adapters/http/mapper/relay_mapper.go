package mapper

import (
	"encoding/json"
	"time"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	storefront "github.com/Apurer/go-gin-order-bridge/internal/domains/storefront/domain"
)

// Ack is the body returned to the storefront for every accepted delivery.
type Ack struct {
	Status string `json:"status"`
}

// OK is the acknowledgement the storefront expects.
var OK = Ack{Status: "ok"}

// Artifact represents the transport-layer shape of a stored POS order.
type Artifact struct {
	OrderID       int64           `json:"orderId"`
	ReceiptID     string          `json:"receiptId,omitempty"`
	EventID       string          `json:"eventId,omitempty"`
	SourceOrderID string          `json:"sourceOrderId,omitempty"`
	Unsupported   []string        `json:"unsupported,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
	Order         json.RawMessage `json:"order"`
}

// Transcode is the dry-run response.
type Transcode struct {
	Order       json.RawMessage `json:"order"`
	Unsupported []string        `json:"unsupported"`
}

// ToWebhookInput converts a parsed webhook envelope into the use case input.
func ToWebhookInput(hook *storefront.Webhook) types.WebhookInput {
	if hook == nil {
		return types.WebhookInput{}
	}
	return types.WebhookInput{
		EventType:  hook.Data.EventType,
		InstanceID: hook.Data.InstanceID,
		Payload:    []byte(hook.Data.Data),
	}
}

// FromArtifact converts a stored artifact to the transport representation.
func FromArtifact(p *types.ArtifactProjection) Artifact {
	if p == nil {
		return Artifact{}
	}
	out := Artifact{
		OrderID:       p.Entity.OrderID,
		ReceiptID:     p.Entity.ReceiptID,
		EventID:       p.Entity.EventID,
		SourceOrderID: p.Entity.SourceOrderID,
		Unsupported:   p.Entity.Unsupported,
		Order:         json.RawMessage(p.Entity.Body),
	}
	if !p.Metadata.CreatedAt.IsZero() {
		created := p.Metadata.CreatedAt
		out.CreatedAt = &created
	}
	if !p.Metadata.UpdatedAt.IsZero() {
		updated := p.Metadata.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

// FromTranscodeResult converts a preview result to the transport representation.
func FromTranscodeResult(r *types.TranscodeResult) Transcode {
	if r == nil {
		return Transcode{Unsupported: []string{}}
	}
	unsupported := r.Unsupported
	if unsupported == nil {
		unsupported = []string{}
	}
	return Transcode{Order: json.RawMessage(r.Body), Unsupported: unsupported}
}
