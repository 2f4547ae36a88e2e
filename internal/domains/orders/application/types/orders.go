package types

import "github.com/Apurer/choufli-storefront/internal/domains/orders/domain"

// PlaceOrderInput is a parsed intake request.
type PlaceOrderInput struct {
	Customer       domain.Customer
	Items          []domain.LineItem
	Total          int64
	IdempotencyKey string
}

// PlacedOrder is the stored order. Replayed is set when an earlier request
// with the same idempotency key already stored it.
type PlacedOrder struct {
	Order    *domain.Order
	Replayed bool
}
