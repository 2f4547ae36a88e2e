package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
)

// settle dispatches to every endpoint at once and waits for all of them.
// A failing endpoint never cancels the others: the goroutines only record
// their outcome and always return nil.
func settle(ctx context.Context, dispatcher ports.Dispatcher, endpoints []domain.Endpoint, payload domain.Payload, submissionID string) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(endpoints))
	var g errgroup.Group
	for i, endpoint := range endpoints {
		g.Go(func() error {
			outcomes[i] = deliver(ctx, dispatcher, ports.Request{
				Endpoint:     endpoint,
				Payload:      payload,
				SubmissionID: submissionID,
			})
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func deliver(ctx context.Context, dispatcher ports.Dispatcher, req ports.Request) domain.Outcome {
	if req.Endpoint.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Endpoint.Timeout)
		defer cancel()
	}
	delivery, err := dispatcher.Dispatch(ctx, req)
	if err != nil {
		return domain.Outcome{Endpoint: req.Endpoint, Err: err}
	}
	return domain.Outcome{
		Endpoint:  req.Endpoint,
		Delivery:  delivery,
		Delivered: req.Endpoint.Evaluate(delivery),
	}
}
