package metrics

import "sync/atomic"

// RunMetrics is the progress counter a Runner advances while a job runs.
type RunMetrics struct {
	ProcessedCount atomic.Int32
	SentCount      atomic.Int32
	SkippedCount   atomic.Int32
	FailedCount    atomic.Int32
}
