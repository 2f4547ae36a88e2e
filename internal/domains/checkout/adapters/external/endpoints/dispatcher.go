package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Apurer/choufli-storefront/internal/clients/http/intake"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
)

// Dispatcher posts order payloads through the intake client. Fire-and-forget
// endpoints are sent without reading the response when they are cross-origin.
type Dispatcher struct {
	client *intake.Client
}

func NewDispatcher(client *intake.Client) (*Dispatcher, error) {
	if client == nil {
		return nil, errors.New("intake client is required")
	}
	return &Dispatcher{client: client}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, req ports.Request) (domain.Delivery, error) {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("encode order payload: %w", err)
	}
	opts := []intake.PostOption{intake.WithIdempotencyKey(req.SubmissionID)}
	if req.Endpoint.Mode == domain.ModeFireAndForget {
		opts = append(opts, intake.WithNoCORS())
	}
	resp, err := d.client.Post(ctx, req.Endpoint.URL, body, opts...)
	if err != nil {
		if errors.Is(err, intake.ErrCrossOriginBlocked) {
			return domain.Delivery{}, fmt.Errorf("%w: %w", domain.ErrCrossOriginBlocked, err)
		}
		return domain.Delivery{}, err
	}
	return domain.Delivery{StatusCode: resp.StatusCode, Opaque: resp.Opaque}, nil
}

var _ ports.Dispatcher = (*Dispatcher)(nil)
