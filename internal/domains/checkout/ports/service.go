package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
)

// Service submits the current cart to every configured endpoint.
type Service interface {
	Submit(ctx context.Context) (domain.Result, error)
	Endpoints() []domain.Endpoint
}
