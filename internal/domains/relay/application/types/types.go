package types

import (
	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	"github.com/Apurer/go-gin-order-bridge/internal/shared/projection"
)

// WebhookInput is a storefront delivery after the outer envelope was read.
// Payload holds the embedded order event JSON.
type WebhookInput struct {
	EventType  string
	InstanceID string
	Payload    []byte
}

// Artifact is a transcoded order ready for the POS, keyed by OrderID.
type Artifact struct {
	OrderID       int64
	ReceiptID     string
	EventID       string
	SourceOrderID string
	Body          []byte
	Unsupported   []string
}

// ArtifactProjection is a stored artifact with its persistence timestamps.
type ArtifactProjection = projection.Projection[Artifact]

// TranscodeResult is the outcome of a side-effect free transformation.
type TranscodeResult struct {
	Order       *pos.Order
	Body        []byte
	Unsupported []string
}

// DeliveryInput hands a stored artifact to the POS delivery pipeline.
// EventID is the storefront event id; redeliveries of one event share it.
type DeliveryInput struct {
	OrderID   int64
	ReceiptID string
	EventID   string
	Body      []byte
}

// Clone duplicates the artifact's byte and string slices.
func (a Artifact) Clone() Artifact {
	c := a
	if a.Body != nil {
		c.Body = append([]byte(nil), a.Body...)
	}
	if a.Unsupported != nil {
		c.Unsupported = append([]string(nil), a.Unsupported...)
	}
	return c
}
