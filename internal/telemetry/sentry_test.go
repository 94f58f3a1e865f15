package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoDSN(t *testing.T) {
	shutdown, err := Init(Config{}, nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NotPanics(t, shutdown)
}

func TestStartSpan_SetsAttributes(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "palette.search", SpanAttributes{
		ShopID:    "shop-1",
		UserRef:   "alex",
		Role:      "barber",
		Operation: "search",
	})
	defer span.End()

	require.NotNil(t, ctx)
	assert.Equal(t, "shop-1", span.inner.Tags["shop_id"])
	assert.Equal(t, "alex", span.inner.Tags["user_ref"])
	assert.Equal(t, "barber", span.inner.Tags["role"])
	assert.Equal(t, "search", span.inner.Data["operation"])
}

func TestStartSpan_ChildOfExisting(t *testing.T) {
	ctx, parent := StartTransaction(context.Background(), "POST /palette/search", "http.server")
	defer parent.End()

	_, child := StartSpan(ctx, "palette.rank", SpanAttributes{})
	defer child.End()

	assert.Equal(t, parent.inner.TraceID, child.inner.TraceID)
	assert.Equal(t, parent.inner.SpanID, child.inner.ParentSpanID)
}

func TestSpan_NilSafe(t *testing.T) {
	span := &Span{}
	assert.NotPanics(t, func() {
		span.SetStatus(sentry.SpanStatusOK)
		span.SetError(errors.New("boom"))
		span.End()
	})
	assert.NotNil(t, span.Context())
}
