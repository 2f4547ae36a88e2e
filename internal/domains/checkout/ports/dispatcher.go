package ports

import (
	"context"

	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
)

// Request is one delivery of a submission to one endpoint.
type Request struct {
	Endpoint     domain.Endpoint
	Payload      domain.Payload
	SubmissionID string
}

// Dispatcher posts a payload to a single endpoint and reports what could be
// observed of the response. Dispatch must honour ctx cancellation.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) (domain.Delivery, error)
}
