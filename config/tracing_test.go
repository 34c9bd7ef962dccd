package config

import (
	"testing"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want otlpTarget
	}{
		{"http default path", "http://collector:4318", otlpTarget{"collector:4318", "/v1/traces", true}},
		{"https custom path", "https://otel.hebed.ai/ingest/traces", otlpTarget{"otel.hebed.ai", "/ingest/traces", false}},
		{"trailing slash", "http://localhost:4318/", otlpTarget{"localhost:4318", "/v1/traces", true}},
		{"bare host port", " collector:4318 ", otlpTarget{"collector:4318", "/v1/traces", true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOTLPEndpoint(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOTLPEndpoint_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "collector:4318/v1/traces", "grpc://collector:4317", "http://"} {
		_, err := parseOTLPEndpoint(raw)
		assert.Error(t, err, "endpoint %q", raw)
	}
}

func TestSamplingRatio(t *testing.T) {
	assert.Equal(t, 1.0, samplingRatio(""))
	assert.Equal(t, 1.0, samplingRatio("abc"))
	assert.Equal(t, 0.25, samplingRatio("0.25"))
	assert.Equal(t, 0.0, samplingRatio("-3"))
	assert.Equal(t, 1.0, samplingRatio("7"))
}

func TestSetupTracing_DisabledReturnsNilShutdown(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "false")

	shutdown, err := SetupTracing(log.NewLoggerWithJSONOutput())
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}
