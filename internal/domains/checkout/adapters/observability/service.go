package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/choufli-storefront/internal/domains/checkout/application"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/checkout/ports"
)

const tracerName = "github.com/Apurer/choufli-storefront/internal/domains/checkout/adapters/observability/service"

// Service decorates checkout with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) Submit(ctx context.Context) (domain.Result, error) {
	ctx, span := s.tracer.Start(ctx, "Checkout.Submit",
		trace.WithAttributes(attribute.Int("checkout.endpoints", len(s.inner.Endpoints()))))
	defer span.End()

	result, err := s.inner.Submit(ctx)
	for _, o := range result.Outcomes {
		s.metrics.recordOutcome(ctx, o)
	}
	if err != nil {
		s.metrics.recordSubmission(ctx, rejection(err))
		if errors.Is(err, application.ErrEmptyCart) || errors.Is(err, application.ErrSubmissionInProgress) {
			s.logInfo(ctx, "checkout rejected", slog.String("reason", err.Error()))
			return result, err
		}
		return result, s.handleError(ctx, span, err, "checkout failed",
			slog.String("submission.id", result.SubmissionID), slog.Int("endpoints", len(result.Outcomes)))
	}
	status := string(result.Status())
	s.metrics.recordSubmission(ctx, status)
	span.SetAttributes(
		attribute.String("checkout.submission_id", result.SubmissionID),
		attribute.String("checkout.status", status),
		attribute.Int("checkout.delivered", result.Succeeded()),
	)
	s.logInfo(ctx, "checkout completed", slog.String("submission.id", result.SubmissionID), slog.String("status", status))
	return result, nil
}

func (s *Service) Endpoints() []domain.Endpoint {
	return s.inner.Endpoints()
}

func rejection(err error) string {
	switch {
	case errors.Is(err, application.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, application.ErrSubmissionInProgress):
		return "in_progress"
	default:
		return string(domain.StatusFailed)
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	submissions metric.Int64Counter
	outcomes    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submissions, _ := m.Int64Counter("checkout.submissions", metric.WithDescription("Number of checkout attempts by result"))
	outcomes, _ := m.Int64Counter("checkout.endpoint_outcomes", metric.WithDescription("Number of endpoint deliveries by result"))
	return serviceMetrics{submissions: submissions, outcomes: outcomes}
}

func (m serviceMetrics) recordSubmission(ctx context.Context, status string) {
	if m.submissions != nil {
		m.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.status", status)))
	}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, o domain.Outcome) {
	if m.outcomes == nil {
		return
	}
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("checkout.endpoint", o.Endpoint.Label()),
		attribute.String("checkout.mode", string(o.Endpoint.Mode)),
		attribute.Bool("checkout.delivered", o.Delivered),
	))
}

var _ ports.Service = (*Service)(nil)
