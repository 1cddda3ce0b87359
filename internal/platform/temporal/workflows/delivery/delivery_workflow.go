package delivery

import (
	"go.temporal.io/sdk/workflow"

	relaytypes "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/sequences"
)

const (
	// DeliveryWorkflowName is the public identifier for registering the workflow.
	DeliveryWorkflowName = "relay.workflows.Delivery"
	// DeliveryTaskQueue is the queue consumed by the worker delivering POS orders.
	DeliveryTaskQueue = "POS_DELIVERY"
)

// DeliveryWorkflowInput carries one stored artifact to deliver.
type DeliveryWorkflowInput struct {
	Delivery relaytypes.DeliveryInput
	TraceID  string
}

// DeliveryWorkflow delivers an artifact to the POS with durable retries.
func DeliveryWorkflow(ctx workflow.Context, input DeliveryWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Delivery.OrderID
	logger.Info("DeliveryWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	if err := sequences.RunDeliverySequence(ctx, input.Delivery); err != nil {
		logger.Error("DeliveryWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("DeliveryWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
