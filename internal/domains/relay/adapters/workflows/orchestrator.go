package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	deliveryworkflows "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/workflows/delivery"
)

var (
	_ ports.DeliveryOrchestrator = (*TemporalDelivery)(nil)
	_ ports.DeliveryOrchestrator = (*InlineDelivery)(nil)
)

// workflowStarter is the slice of client.Client the orchestrator needs.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalDelivery starts delivery workflows on a Temporal cluster. It does not
// wait for the POS; the worker owns retries.
type TemporalDelivery struct {
	client    workflowStarter
	taskQueue string
}

// NewTemporalDelivery wires a Temporal client into the orchestrator.
func NewTemporalDelivery(c client.Client) *TemporalDelivery {
	if c == nil {
		return &TemporalDelivery{taskQueue: deliveryworkflows.DeliveryTaskQueue}
	}
	return &TemporalDelivery{client: c, taskQueue: deliveryworkflows.DeliveryTaskQueue}
}

// Deliver starts the delivery workflow. A workflow already started for the
// same storefront event counts as scheduled; only a failed one is rerun.
func (o *TemporalDelivery) Deliver(ctx context.Context, input types.DeliveryInput) error {
	if o == nil || o.client == nil {
		return errors.New("temporal delivery not configured")
	}
	options := client.StartWorkflowOptions{
		ID:                    DeliveryWorkflowID(input),
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		deliveryworkflows.DeliveryWorkflowName,
		deliveryworkflows.DeliveryWorkflowInput{Delivery: input, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineDelivery calls the dispatcher directly without durable orchestration,
// useful for tests or dev fallbacks.
type InlineDelivery struct {
	dispatcher ports.Dispatcher
}

// NewInlineDelivery wraps a dispatcher for synchronous delivery.
func NewInlineDelivery(dispatcher ports.Dispatcher) *InlineDelivery {
	return &InlineDelivery{dispatcher: dispatcher}
}

// Deliver dispatches the artifact body once.
func (o *InlineDelivery) Deliver(ctx context.Context, input types.DeliveryInput) error {
	if o == nil || o.dispatcher == nil {
		return errors.New("inline delivery not configured")
	}
	return o.dispatcher.Dispatch(ctx, input)
}

// DeliveryWorkflowID is derived from the storefront event id, so a webhook
// redelivered for the same event maps to the same workflow. Inputs without
// an event id fall back to the receipt and are never deduplicated.
func DeliveryWorkflowID(input types.DeliveryInput) string {
	if input.EventID != "" {
		return fmt.Sprintf("pos-delivery-%d-event-%s", input.OrderID, input.EventID)
	}
	return fmt.Sprintf("pos-delivery-%d-%s", input.OrderID, input.ReceiptID)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
