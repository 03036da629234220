package tracing

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceparentRoundTrip(t *testing.T) {
	ctx := context.Background()
	tp, err := Init(ctx, "test", "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(ctx) }()

	spanCtx, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	tp1 := Traceparent(spanCtx)
	require.NotEmpty(t, tp1)

	headers := InjectKafkaHeaders(spanCtx, nil)
	restored := ExtractKafkaHeaders(ctx, headers)
	assert.Equal(t, tp1, Traceparent(restored))
	assert.Equal(t, tp1, Traceparent(FromTraceparent(ctx, tp1)))
	assert.Empty(t, Traceparent(FromTraceparent(ctx, "")))
}
