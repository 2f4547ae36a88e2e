package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
)

// WorkflowOrchestrator runs order placement, durably or inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacedOrder, error)
}
