package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/choufli-storefront/internal/durable/temporal/activities/orders"
	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
)

// RunOrderPersistenceSequence executes the activities needed to store a received order.
func RunOrderPersistenceSequence(ctx workflow.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "items", len(input.Items))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var placed ordertypes.PlacedOrder
	if err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, input).Get(ctx, &placed); err != nil {
		logger.Error("order persistence sequence failed", "error", err)
		return nil, err
	}
	if placed.Order != nil {
		logger.Info("order persistence sequence completed", "orderId", placed.Order.ID)
	}
	return &placed, nil
}
