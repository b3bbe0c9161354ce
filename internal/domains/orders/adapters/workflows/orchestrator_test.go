package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/orders"
)

type fixedIDs struct{}

func (fixedIDs) NewID() string     { return "order-1" }
func (fixedIDs) NewNumber() string { return "RF55555" }

type fakeRun struct {
	client.WorkflowRun
	order *domain.Order
	err   error
}

func (r fakeRun) Get(_ context.Context, valuePtr interface{}) error {
	if r.err != nil {
		return r.err
	}
	*valuePtr.(*domain.Order) = *r.order
	return nil
}

type fakeStarter struct {
	startErr   error
	run        fakeRun
	started    []client.StartWorkflowOptions
	inputs     []orderworkflows.OrderPlacementWorkflowInput
	fetchedIDs []string
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.started = append(f.started, options)
	f.inputs = append(f.inputs, args[0].(orderworkflows.OrderPlacementWorkflowInput))
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.run, nil
}

func (f *fakeStarter) GetWorkflow(_ context.Context, workflowID string, _ string) client.WorkflowRun {
	f.fetchedIDs = append(f.fetchedIDs, workflowID)
	return f.run
}

func TestTemporalOrderWorkflows_PreassignsIdentity(t *testing.T) {
	starter := &fakeStarter{run: fakeRun{order: &domain.Order{ID: "order-1", Number: "RF55555", Total: decimal.NewFromInt(10)}}}
	o := newTemporalOrderWorkflows(starter, fixedIDs{})

	order, err := o.PlaceOrder(context.Background(), types.CreateOrderInput{UserID: "user123"})
	require.NoError(t, err)
	require.Equal(t, "order-1", order.ID)

	require.Len(t, starter.started, 1)
	require.Equal(t, "order-placement-order-1", starter.started[0].ID)
	require.Equal(t, orderworkflows.OrderPlacementTaskQueue, starter.started[0].TaskQueue)
	require.Equal(t, "order-1", starter.inputs[0].Command.OrderID)
	require.Equal(t, "RF55555", starter.inputs[0].Command.Number)
	require.NotEmpty(t, starter.inputs[0].TraceID)
}

func TestTemporalOrderWorkflows_AttachesToRunningWorkflow(t *testing.T) {
	starter := &fakeStarter{
		startErr: serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req", "run-1"),
		run:      fakeRun{order: &domain.Order{ID: "order-1"}},
	}
	o := newTemporalOrderWorkflows(starter, fixedIDs{})

	order, err := o.PlaceOrder(context.Background(), types.CreateOrderInput{UserID: "user123"})
	require.NoError(t, err)
	require.Equal(t, "order-1", order.ID)
	require.Equal(t, []string{"order-placement-order-1"}, starter.fetchedIDs)
}

func TestTemporalOrderWorkflows_TranslatesRejections(t *testing.T) {
	rejected := temporal.NewNonRetryableApplicationError("empty", orderactivities.RejectedOrderErrorType, nil)
	starter := &fakeStarter{run: fakeRun{err: rejected}}
	o := newTemporalOrderWorkflows(starter, fixedIDs{})

	_, err := o.PlaceOrder(context.Background(), types.CreateOrderInput{UserID: "user123"})
	require.ErrorIs(t, err, application.ErrUnprocessable)

	boom := errors.New("frontend unavailable")
	starter = &fakeStarter{startErr: boom}
	o = newTemporalOrderWorkflows(starter, fixedIDs{})
	_, err = o.PlaceOrder(context.Background(), types.CreateOrderInput{UserID: "user123"})
	require.ErrorIs(t, err, boom)
}

type recordingService struct {
	application.Service
	inputs []types.CreateOrderInput
}

func (r *recordingService) CreateOrder(_ context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	r.inputs = append(r.inputs, input)
	return &domain.Order{ID: "inline"}, nil
}

func TestInlineOrderWorkflows_Delegates(t *testing.T) {
	svc := &recordingService{}
	o := NewInlineOrderWorkflows(svc)

	order, err := o.PlaceOrder(context.Background(), types.CreateOrderInput{UserID: "user123"})
	require.NoError(t, err)
	require.Equal(t, "inline", order.ID)
	require.Len(t, svc.inputs, 1)

	var empty *InlineOrderWorkflows
	_, err = empty.PlaceOrder(context.Background(), types.CreateOrderInput{})
	require.Error(t, err)
}
