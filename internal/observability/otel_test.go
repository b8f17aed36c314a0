package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOtelConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_SAMPLER_RATIO", "4")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "a=1, b = 2,broken,=x")

	cfg := OtelConfigFromEnv("test", "dev")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, cfg.Headers)
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{})
	assert.NoError(t, shutdown(context.Background()))
}
