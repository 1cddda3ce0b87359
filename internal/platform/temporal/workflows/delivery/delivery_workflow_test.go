package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	relaytypes "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/application/types"
	relayports "github.com/Apurer/go-gin-order-bridge/internal/domains/relay/ports"
	deliveryactivities "github.com/Apurer/go-gin-order-bridge/internal/platform/temporal/activities/delivery"
)

type scriptedDispatcher struct {
	mu     sync.Mutex
	errs   []error
	calls  int
	bodies [][]byte
}

func (d *scriptedDispatcher) Dispatch(_ context.Context, delivery relaytypes.DeliveryInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.bodies = append(d.bodies, delivery.Body)
	if len(d.errs) == 0 {
		return nil
	}
	err := d.errs[0]
	d.errs = d.errs[1:]
	return err
}

func newEnv(t *testing.T, dispatcher relayports.Dispatcher) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := deliveryactivities.NewActivities(dispatcher)
	env.RegisterActivityWithOptions(acts.DispatchOrder, activity.RegisterOptions{Name: deliveryactivities.DispatchOrderActivityName})
	return env
}

func deliveryInput() DeliveryWorkflowInput {
	return DeliveryWorkflowInput{
		Delivery: relaytypes.DeliveryInput{OrderID: 42, ReceiptID: "r-42", Body: []byte(`{"id":42}`)},
		TraceID:  "trace-1",
	}
}

func TestDeliveryWorkflow_Dispatches(t *testing.T) {
	dispatcher := &scriptedDispatcher{}
	env := newEnv(t, dispatcher)

	env.ExecuteWorkflow(DeliveryWorkflow, deliveryInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 1, dispatcher.calls)
	require.Equal(t, `{"id":42}`, string(dispatcher.bodies[0]))
}

func TestDeliveryWorkflow_RetriesTransientFailures(t *testing.T) {
	dispatcher := &scriptedDispatcher{errs: []error{errors.New("connection refused"), errors.New("timeout")}}
	env := newEnv(t, dispatcher)

	env.ExecuteWorkflow(DeliveryWorkflow, deliveryInput())

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 3, dispatcher.calls)
}

func TestDeliveryWorkflow_RejectionIsNotRetried(t *testing.T) {
	dispatcher := &scriptedDispatcher{errs: []error{fmt.Errorf("%w: status 400", relayports.ErrDispatchRejected)}}
	env := newEnv(t, dispatcher)

	env.ExecuteWorkflow(DeliveryWorkflow, deliveryInput())

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	require.True(t, appErr.NonRetryable())
	require.Equal(t, 1, dispatcher.calls)
}
