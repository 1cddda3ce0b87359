package ports

import (
	"context"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
)

// DeliveryOrchestrator schedules POS delivery of a stored artifact.
type DeliveryOrchestrator interface {
	Deliver(ctx context.Context, input types.DeliveryInput) error
}
