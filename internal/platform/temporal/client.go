package temporal

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when TEMPORAL_DISABLED is set.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Config selects the Temporal frontend.
type Config struct {
	Address   string
	Namespace string
	Disabled  bool
}

// ClientOptions builds SDK options with slog logging and the OpenTelemetry
// tracing interceptor.
func ClientOptions(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Options, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	if options.HostPort == "" {
		options.HostPort = client.DefaultHostPort
	}
	if options.Namespace == "" {
		options.Namespace = client.DefaultNamespace
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, err
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}

// Dial connects to Temporal unless it is disabled.
func Dial(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}
	options, err := ClientOptions(cfg, logger, tracer)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}
