package posapi

import (
	"context"
	"errors"
	"fmt"

	posclient "github.com/Apurer/go-gin-order-bridge/internal/clients/http/pos"
	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

// orderSubmitter is the slice of the POS client the dispatcher needs.
type orderSubmitter interface {
	SubmitOrder(ctx context.Context, body []byte, optFns ...posclient.SubmitOption) error
}

// Dispatcher implements the outbound POS port over the HTTP ingestion API.
type Dispatcher struct {
	client orderSubmitter
}

// NewDispatcher wires a POS HTTP client into a dispatch adapter.
func NewDispatcher(client *posclient.Client) *Dispatcher {
	if client == nil {
		return &Dispatcher{}
	}
	return &Dispatcher{client: client}
}

// Dispatch posts the artifact body keyed by its receipt id.
func (d *Dispatcher) Dispatch(ctx context.Context, delivery types.DeliveryInput) error {
	if d == nil || d.client == nil {
		return errors.New("pos dispatcher not configured")
	}
	err := d.client.SubmitOrder(ctx, delivery.Body, posclient.WithIdempotencyKey(delivery.ReceiptID))
	if err == nil {
		return nil
	}
	if errors.Is(err, posclient.ErrRejected) {
		return fmt.Errorf("%w: order %d: %w", ports.ErrDispatchRejected, delivery.OrderID, err)
	}
	return fmt.Errorf("submit order %d: %w", delivery.OrderID, err)
}

var _ ports.Dispatcher = (*Dispatcher)(nil)
