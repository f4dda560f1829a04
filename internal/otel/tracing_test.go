package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zapcore.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	entries := logs.FilterMessage("tracing_configured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	core, logs := observer.New(zapcore.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("tracing_init_failed").Len())
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", sampler("always_on", "").Description())
	assert.Equal(t, "AlwaysOffSampler", sampler("always_off", "").Description())
	assert.Equal(t, "TraceIDRatioBased{0.5}", sampler("traceidratio", "0.5").Description())
	// An unparsable ratio samples everything; the SDK reports a full ratio as always-on.
	assert.Equal(t, "AlwaysOnSampler", sampler("traceidratio", "junk").Description())
	assert.Contains(t, sampler("parentbased_traceidratio", "0.25").Description(), "root:TraceIDRatioBased{0.25}")
	assert.Contains(t, sampler("parentbased_traceidratio", "junk").Description(), "root:AlwaysOnSampler")
	assert.Contains(t, sampler("unknown", "").Description(), "ParentBased")
}
