package observability_test

import (
	"context"
	"log/slog"
	"testing"

	"ftl/internal/platform/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("chatty"))
}

func TestInit_WithoutEndpointInstallsProvider(t *testing.T) {
	ctx := context.Background()

	logger, shutdown, err := observability.Init(ctx, observability.Options{ServiceName: "ftl-test"})

	require.NoError(t, err)
	require.NotNil(t, logger)
	t.Cleanup(func() { assert.NoError(t, shutdown(ctx)) })

	_, span := otel.Tracer("test").Start(ctx, "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
