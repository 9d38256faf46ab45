package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shashankvwali/VoltGo/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "voltgo-api",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   telemetry.DefaultOTLPEndpoint,
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := telemetry.ConfigFromEnv("voltgo-api", "v1", "development")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, telemetry.DefaultOTLPEndpoint, cfg.OTLPEndpoint)
	assert.Equal(t, "voltgo-api", cfg.ServiceName)
	assert.Equal(t, "v1", cfg.ServiceVersion)
	assert.Equal(t, "development", cfg.Environment)

	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")

	cfg = telemetry.ConfigFromEnv("voltgo-api", "v1", "production")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
}
