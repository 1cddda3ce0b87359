package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	relaytypes "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	deliveryactivities "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/activities/delivery"
)

// DispatchActivityOptions bounds a single POS call and retries transient failures
// for roughly ten minutes.
var DispatchActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    2 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    12,
	},
}

// RunDeliverySequence executes the activities needed to hand an artifact to the POS.
func RunDeliverySequence(ctx workflow.Context, input relaytypes.DeliveryInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("delivery sequence started", "orderId", input.OrderID, "receiptId", input.ReceiptID)

	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, DispatchActivityOptions), deliveryactivities.DispatchOrderActivityName, input).Get(ctx, nil)
	if err != nil {
		logger.Error("delivery sequence failed", "orderId", input.OrderID, "error", err)
		return err
	}
	logger.Info("delivery sequence dispatched", "orderId", input.OrderID)
	return nil
}
