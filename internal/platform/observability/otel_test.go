package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_LoggerHonoursLevelAndOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), "test-service",
		WithLogOutput(&buf),
		WithLogLevel(slog.LevelWarn),
		WithoutDefaultExporter(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	instruments.Logger.Info("hidden")
	instruments.Logger.Warn("shown", slog.String("k", "v"))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
	require.Contains(t, buf.String(), `"k":"v"`)

	_, span := instruments.Tracer("test").Start(context.Background(), "op")
	span.End()
	require.NotNil(t, instruments.Meter("test"))
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	require.Equal(t, slog.LevelDebug, levelFromEnv(slog.LevelWarn))

	t.Setenv("LOG_LEVEL", "loud")
	require.Equal(t, slog.LevelWarn, levelFromEnv(slog.LevelWarn))
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	require.NotNil(t, instruments.Tracer("x"))
	require.NotNil(t, instruments.Meter("x"))
}
