package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
)

// Service exposes the cart mutations to the UI collaborator and to checkout.
type Service interface {
	Add(ctx context.Context, req domain.AddRequest) (domain.View, error)
	ChangeSize(ctx context.Context, index int, size domain.Size) error
	Remove(ctx context.Context, index int) (domain.View, error)
	Clear(ctx context.Context) (domain.View, error)
	Refresh(ctx context.Context) domain.View
	Items() domain.Cart
	ShippingFee() int64
}
