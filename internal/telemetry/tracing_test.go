package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerProvider_None(t *testing.T) {
	tp, err := InitTracerProvider(context.Background(), "storefront-test", ExporterNone)
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}

func TestInitTracerProvider_UnknownExporter(t *testing.T) {
	_, err := InitTracerProvider(context.Background(), "storefront-test", "zipkin")
	assert.ErrorContains(t, err, "unknown trace exporter")
}
