package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{ApplicationName: "catalogsync"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProfilerConfig
		wantErr error
	}{
		{
			name:    "missing endpoint",
			cfg:     ProfilerConfig{Enabled: true, ApplicationName: "catalogsync"},
			wantErr: ErrProfilerEndpointRequired,
		},
		{
			name:    "missing application name",
			cfg:     ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"},
			wantErr: ErrProfilerNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfiler(tt.cfg, zap.NewNop())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}
}

func TestProfileTags(t *testing.T) {
	t.Setenv("HOSTNAME", "catalog-0")

	tags := profileTags("1.4.0")
	assert.Equal(t, "1.4.0", tags["version"])
	assert.Equal(t, "catalog-0", tags["hostname"])

	t.Setenv("HOSTNAME", "")
	assert.Empty(t, profileTags(""))
}

func TestWithIngestionLabels(t *testing.T) {
	tests := []struct {
		name         string
		platform     string
		wantPlatform string
	}{
		{name: "known platform", platform: "vtex", wantPlatform: "vtex"},
		{name: "empty platform", platform: "", wantPlatform: "unknown"},
		{name: "long value truncated", platform: strings.Repeat("x", 100), wantPlatform: strings.Repeat("x", maxLabelValueLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			WithIngestionLabels(context.Background(), tt.platform, OperationReconcile, func(ctx context.Context) {
				called = true

				platform, ok := pprof.Label(ctx, ProfilingLabelPlatform)
				require.True(t, ok)
				assert.Equal(t, tt.wantPlatform, platform)

				op, ok := pprof.Label(ctx, ProfilingLabelOperation)
				require.True(t, ok)
				assert.Equal(t, OperationReconcile, op)
			})
			assert.True(t, called)
		})
	}
}

func TestWithIngestionLabels_Nested(t *testing.T) {
	WithIngestionLabels(context.Background(), "shopify", OperationIngest, func(ctx context.Context) {
		WithIngestionLabels(ctx, "shopify", OperationReconcile, func(inner context.Context) {
			op, _ := pprof.Label(inner, ProfilingLabelOperation)
			assert.Equal(t, OperationReconcile, op)
		})

		op, _ := pprof.Label(ctx, ProfilingLabelOperation)
		assert.Equal(t, OperationIngest, op)
	})
}

func TestEnableSpanProfiles(t *testing.T) {
	t.Run("no-op when tracing is disabled", func(t *testing.T) {
		tp, err := NewTracerProvider(context.Background(), Config{ServiceName: "catalogsync"}, zap.NewNop())
		require.NoError(t, err)

		tp.EnableSpanProfiles()
		assert.False(t, tp.SpanProfilesEnabled())
	})

	t.Run("links spans to profiles", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp, err := NewTracerProviderWithProcessor(Config{ServiceName: "catalogsync", SamplingRatio: 1}, recorder, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

		tp.EnableSpanProfiles()
		tp.EnableSpanProfiles()
		assert.True(t, tp.SpanProfilesEnabled())

		ctx, span := StartSpan(context.Background(), "catalog.Ingest")
		spanID, ok := pprof.Label(ctx, "span_id")
		EndSpan(span, nil)

		require.True(t, ok)
		assert.Equal(t, span.SpanContext().SpanID().String(), spanID)

		ended := recorder.Ended()
		require.Len(t, ended, 1)
		assert.Contains(t, ended[0].Attributes(), attribute.String("pyroscope.profile.id", spanID))
	})
}
