package telemetry

import (
	"context"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelPlatform  = "platform"
	ProfilingLabelOperation = "operation"
)

// Profiling operations, one per ingestion stage
const (
	OperationIngest    = "ingest"
	OperationReconcile = "reconcile"
)

// maxLabelValueLength bounds label values so a malformed platform prefix
// cannot blow up profile cardinality
const maxLabelValueLength = 64

// WithIngestionLabels runs fn with pprof labels naming the platform and the
// ingestion stage, so CPU and allocation profiles can be split per platform.
// Goroutines started by fn inherit the labels. An empty platform is recorded
// as "unknown".
func WithIngestionLabels(ctx context.Context, platform, operation string, fn func(context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels(
		ProfilingLabelPlatform, labelValue(platform),
		ProfilingLabelOperation, labelValue(operation),
	), fn)
}

func labelValue(v string) string {
	if v == "" {
		return "unknown"
	}
	if len(v) > maxLabelValueLength {
		return v[:maxLabelValueLength]
	}
	return v
}
