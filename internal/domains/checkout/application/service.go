package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	cartports "github.com/Apurer/choufli-storefront/internal/domains/cart/ports"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
)

// Service runs the checkout of one storefront session.
type Service struct {
	cart       cartports.Service
	dispatcher ports.Dispatcher
	endpoints  []domain.Endpoint
	form       ports.Form
	notifier   ports.Notifier
	control    ports.SubmitControl
	logger     *slog.Logger
	newID      func() string
	inFlight   atomic.Bool
}

type Option func(*Service)

func WithForm(form ports.Form) Option {
	return func(s *Service) {
		if form != nil {
			s.form = form
		}
	}
}

func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithSubmitControl(c ports.SubmitControl) Option {
	return func(s *Service) {
		if c != nil {
			s.control = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService validates the endpoint list; order is preserved in every Result.
func NewService(cart cartports.Service, dispatcher ports.Dispatcher, endpoints []domain.Endpoint, opts ...Option) (*Service, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	for _, ep := range endpoints {
		if err := ep.Validate(); err != nil {
			return nil, fmt.Errorf("endpoint %s: %w", ep.Label(), err)
		}
	}
	s := &Service{
		cart:       cart,
		dispatcher: dispatcher,
		endpoints:  slices.Clone(endpoints),
		form:       ports.NoopUI{},
		notifier:   ports.NoopUI{},
		control:    ports.NoopUI{},
		logger:     slog.New(slog.DiscardHandler),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Service) Endpoints() []domain.Endpoint {
	return slices.Clone(s.endpoints)
}

// Submit posts the cart to every endpoint and settles them all before
// deciding. Any delivery clears the cart and resets the form; none keeps
// both and returns ErrSubmissionFailed.
func (s *Service) Submit(ctx context.Context) (domain.Result, error) {
	items := s.cart.Items()
	if items.Empty() {
		s.notifier.Notify(ctx, ports.Notice{Level: ports.LevelWarning, Message: domain.MessageEmptyCart})
		return domain.Result{}, ErrEmptyCart
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Result{}, ErrSubmissionInProgress
	}
	defer s.inFlight.Store(false)
	s.control.DisableSubmit()

	payload := domain.NewPayload(s.form.Customer(), items, s.cart.ShippingFee())
	result := domain.Result{SubmissionID: s.newID()}
	result.Outcomes = settle(ctx, s.dispatcher, s.endpoints, payload, result.SubmissionID)

	for _, o := range result.Outcomes {
		if !o.Delivered {
			attrs := []any{slog.String("endpoint", o.Endpoint.Label()), slog.String("submission.id", result.SubmissionID)}
			if o.Err != nil {
				attrs = append(attrs, slog.String("error", o.Err.Error()))
			} else {
				attrs = append(attrs, slog.Int("status", o.Delivery.StatusCode), slog.Bool("opaque", o.Delivery.Opaque))
			}
			s.logger.WarnContext(ctx, "order endpoint did not accept submission", attrs...)
		}
	}

	status := result.Status()
	if status == domain.StatusFailed {
		s.notifier.Notify(ctx, ports.Notice{Level: ports.LevelError, Message: result.Message()})
		s.cart.Refresh(ctx)
		return result, ErrSubmissionFailed
	}

	if _, err := s.cart.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after submission",
			slog.String("submission.id", result.SubmissionID), slog.String("error", err.Error()))
		s.cart.Refresh(ctx)
	}
	s.form.Reset()
	level := ports.LevelInfo
	if status == domain.StatusPartial {
		level = ports.LevelWarning
	}
	s.notifier.Notify(ctx, ports.Notice{Level: level, Message: result.Message()})
	s.logger.InfoContext(ctx, "order submitted",
		slog.String("submission.id", result.SubmissionID),
		slog.String("status", string(status)),
		slog.Int("delivered", result.Succeeded()),
		slog.Int("endpoints", len(result.Outcomes)))
	return result, nil
}

var _ ports.Service = (*Service)(nil)
