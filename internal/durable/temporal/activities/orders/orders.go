package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/application"
	ordertypes "github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	orderports "github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName stores a received order.
	PersistOrderActivityName = "orders.activities.PersistOrder"

	// ErrTypeInvalidOrder tags non-retryable failures caused by invalid input.
	ErrTypeInvalidOrder = "InvalidOrder"
	// ErrTypeIdempotencyConflict tags a reused idempotency key with different content.
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder stores the order. Invalid input and idempotency conflicts are
// not retried.
func (a *Activities) PersistOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*ordertypes.PlacedOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "items", len(input.Items))
	placed, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "error", err)
		switch {
		case errors.Is(err, application.ErrInvalidInput):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidOrder, err)
		case errors.Is(err, application.ErrIdempotencyConflict):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeIdempotencyConflict, err)
		}
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", placed.Order.ID, "replayed", placed.Replayed)
	return placed, nil
}
