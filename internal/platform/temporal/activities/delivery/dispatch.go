package delivery

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	relaytypes "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
)

const (
	// DispatchOrderActivityName sends a stored artifact to the POS.
	DispatchOrderActivityName = "relay.activities.DispatchOrder"
	// rejectedErrorType tags non-retryable POS refusals.
	rejectedErrorType = "PosRejected"
)

// Activities groups activities that talk to the point-of-sale system.
type Activities struct {
	dispatcher relayports.Dispatcher
}

// NewActivities wires the POS dispatcher into the Temporal activities bundle.
func NewActivities(dispatcher relayports.Dispatcher) *Activities {
	return &Activities{dispatcher: dispatcher}
}

// DispatchOrder pushes one artifact body to the POS. A refusal by the POS is
// returned as a non-retryable application error.
func (a *Activities) DispatchOrder(ctx context.Context, input relaytypes.DeliveryInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.dispatcher == nil {
		logger.Error("dispatch activity not initialized", "orderId", input.OrderID)
		return errors.New("dispatch activity not initialized")
	}
	if len(input.Body) == 0 {
		return temporal.NewNonRetryableApplicationError("artifact body is empty", rejectedErrorType, nil)
	}
	logger.Info("DispatchOrder activity started", "orderId", input.OrderID, "receiptId", input.ReceiptID, "attempt", activity.GetInfo(ctx).Attempt)
	if err := a.dispatcher.Dispatch(ctx, input); err != nil {
		logger.Error("DispatchOrder activity failed", "orderId", input.OrderID, "error", err)
		if errors.Is(err, relayports.ErrDispatchRejected) {
			return temporal.NewNonRetryableApplicationError(err.Error(), rejectedErrorType, err)
		}
		return err
	}
	logger.Info("DispatchOrder activity completed", "orderId", input.OrderID)
	return nil
}
