package orders

import (
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/durable/temporal/sequences"
)

const (
	// IntakeWorkflowName is the public identifier for registering the workflow.
	IntakeWorkflowName = "orders.workflows.Intake"
	// IntakeTaskQueue is the queue consumed by the worker processing order workflows.
	IntakeTaskQueue = "ORDER_INTAKE"
)

// IntakeWorkflowInput carries one parsed intake request.
type IntakeWorkflowInput struct {
	Command ordertypes.PlaceOrderInput
	TraceID string
}

// IntakeWorkflow durably stores a received order.
func IntakeWorkflow(ctx workflow.Context, input IntakeWorkflowInput) (*ordertypes.PlacedOrder, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("IntakeWorkflow started", withTraceID(input.TraceID, "items", len(input.Command.Items))...)
	placed, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("IntakeWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if placed != nil && placed.Order != nil {
		logger.Info("IntakeWorkflow completed", withTraceID(input.TraceID, "orderId", placed.Order.ID)...)
	}
	return placed, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
