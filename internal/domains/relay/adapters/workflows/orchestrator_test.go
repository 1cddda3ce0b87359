package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	types "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	deliveryworkflows "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/workflows/delivery"
)

type fakeStarter struct {
	options  []client.StartWorkflowOptions
	workflow []interface{}
	args     [][]interface{}
	err      error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.options = append(f.options, options)
	f.workflow = append(f.workflow, workflow)
	f.args = append(f.args, args)
	return nil, f.err
}

type fakeDispatcher struct {
	orderIDs []int64
	err      error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, delivery types.DeliveryInput) error {
	f.orderIDs = append(f.orderIDs, delivery.OrderID)
	return f.err
}

func TestTemporalDelivery_RedeliveredEventSharesWorkflowID(t *testing.T) {
	starter := &fakeStarter{}
	orchestrator := &TemporalDelivery{client: starter, taskQueue: deliveryworkflows.DeliveryTaskQueue}

	first := types.DeliveryInput{OrderID: 64783425355, ReceiptID: "r1", EventID: "evt-1"}
	second := types.DeliveryInput{OrderID: 64783425355, ReceiptID: "r2", EventID: "evt-1"}
	require.NoError(t, orchestrator.Deliver(context.Background(), first))
	require.NoError(t, orchestrator.Deliver(context.Background(), second))

	require.Len(t, starter.options, 2)
	require.Equal(t, "pos-delivery-64783425355-event-evt-1", starter.options[0].ID)
	require.Equal(t, starter.options[0].ID, starter.options[1].ID)
	require.Equal(t, enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY, starter.options[0].WorkflowIDReusePolicy)

	other := types.DeliveryInput{OrderID: 64783425355, ReceiptID: "r3", EventID: "evt-2"}
	require.NotEqual(t, DeliveryWorkflowID(first), DeliveryWorkflowID(other))
}

func TestTemporalDelivery_StartsWorkflow(t *testing.T) {
	starter := &fakeStarter{}
	orchestrator := &TemporalDelivery{client: starter, taskQueue: deliveryworkflows.DeliveryTaskQueue}

	traceID, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	input := types.DeliveryInput{OrderID: 64783425355, ReceiptID: "r1", Body: []byte(`{}`)}
	require.NoError(t, orchestrator.Deliver(ctx, input))

	require.Len(t, starter.options, 1)
	require.Equal(t, "pos-delivery-64783425355-r1", starter.options[0].ID)
	require.Equal(t, deliveryworkflows.DeliveryTaskQueue, starter.options[0].TaskQueue)
	require.Equal(t, deliveryworkflows.DeliveryWorkflowName, starter.workflow[0])
	require.Equal(t, deliveryworkflows.DeliveryWorkflowInput{Delivery: input, TraceID: traceID.String()}, starter.args[0][0])
}

func TestTemporalDelivery_AlreadyStartedIsSuccess(t *testing.T) {
	starter := &fakeStarter{err: serviceerror.NewWorkflowExecutionAlreadyStarted("running", "", "run-1")}
	orchestrator := &TemporalDelivery{client: starter, taskQueue: deliveryworkflows.DeliveryTaskQueue}

	require.NoError(t, orchestrator.Deliver(context.Background(), types.DeliveryInput{OrderID: 1, ReceiptID: "r"}))
}

func TestTemporalDelivery_StartFailure(t *testing.T) {
	starter := &fakeStarter{err: errors.New("frontend unavailable")}
	orchestrator := &TemporalDelivery{client: starter, taskQueue: deliveryworkflows.DeliveryTaskQueue}

	require.Error(t, orchestrator.Deliver(context.Background(), types.DeliveryInput{OrderID: 1, ReceiptID: "r"}))
}

func TestTemporalDelivery_NotConfigured(t *testing.T) {
	require.Error(t, NewTemporalDelivery(nil).Deliver(context.Background(), types.DeliveryInput{}))
}

func TestInlineDelivery(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	require.NoError(t, NewInlineDelivery(dispatcher).Deliver(context.Background(), types.DeliveryInput{OrderID: 5}))
	require.Equal(t, []int64{5}, dispatcher.orderIDs)

	dispatcher.err = errors.New("pos down")
	require.Error(t, NewInlineDelivery(dispatcher).Deliver(context.Background(), types.DeliveryInput{OrderID: 6}))

	require.Error(t, NewInlineDelivery(nil).Deliver(context.Background(), types.DeliveryInput{}))
}
