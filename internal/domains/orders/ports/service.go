package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
)

// Service exposes order intake use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacedOrder, error)
	ListOrders(ctx context.Context, limit int) ([]*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}
