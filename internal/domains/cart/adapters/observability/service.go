package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/choufli-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/choufli-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/choufli-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart session with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the cart session.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Add(ctx context.Context, req cartdomain.AddRequest) (cartdomain.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartSession.Add",
		trace.WithAttributes(attribute.String("item.name", req.Name), attribute.Int64("item.price", req.Price), attribute.String("item.size", string(req.Size))))
	defer span.End()

	view, err := s.inner.Add(ctx, req)
	if err != nil {
		return view, s.handleError(ctx, span, err, "failed to add cart item", slog.String("item.name", req.Name))
	}
	s.metrics.recordMutation(ctx, "add")
	span.SetAttributes(attribute.Int("cart.count", view.Count))
	s.logDebug(ctx, "cart item added", slog.String("item.name", req.Name), slog.Int("cart.count", view.Count))
	return view, nil
}

func (s *Service) ChangeSize(ctx context.Context, index int, size cartdomain.Size) error {
	ctx, span := s.tracer.Start(ctx, "CartSession.ChangeSize",
		trace.WithAttributes(attribute.Int("item.index", index), attribute.String("item.size", string(size))))
	defer span.End()

	if err := s.inner.ChangeSize(ctx, index, size); err != nil {
		return s.handleError(ctx, span, err, "failed to change cart item size", slog.Int("item.index", index))
	}
	s.metrics.recordMutation(ctx, "change_size")
	return nil
}

func (s *Service) Remove(ctx context.Context, index int) (cartdomain.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartSession.Remove", trace.WithAttributes(attribute.Int("item.index", index)))
	defer span.End()

	view, err := s.inner.Remove(ctx, index)
	if err != nil {
		return view, s.handleError(ctx, span, err, "failed to remove cart item", slog.Int("item.index", index))
	}
	s.metrics.recordMutation(ctx, "remove")
	span.SetAttributes(attribute.Int("cart.count", view.Count))
	return view, nil
}

func (s *Service) Clear(ctx context.Context) (cartdomain.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartSession.Clear")
	defer span.End()

	view, err := s.inner.Clear(ctx)
	if err != nil {
		return view, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordMutation(ctx, "clear")
	s.logDebug(ctx, "cart cleared")
	return view, nil
}

func (s *Service) Refresh(ctx context.Context) cartdomain.View {
	return s.inner.Refresh(ctx)
}

func (s *Service) Items() cartdomain.Cart {
	return s.inner.Items()
}

func (s *Service) ShippingFee() int64 {
	return s.inner.ShippingFee()
}

func (s *Service) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.session.mutations", metric.WithDescription("Number of persisted cart mutations"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.operation", op)))
	}
}

var _ cartports.Service = (*Service)(nil)
