package core

import "time"

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting scheduler execution metrics.
// Implementations can send metrics to monitoring systems.
//
// Methods should be non-blocking and fast to avoid impacting batch execution.
type Metrics interface {
	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(schedulerName string, priority int, duration time.Duration)

	// RecordTaskError records that a task's invocation failed.
	RecordTaskError(schedulerName string, taskName string)

	// RecordQueueDepth records the current anonymous-queue depth.
	// Called after every submission.
	RecordQueueDepth(schedulerName string, depth int)

	// RecordNamedTaskReplaced records that SubmitNamed discarded a prior
	// unexecuted task under the same name.
	RecordNamedTaskReplaced(schedulerName string, taskName string)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

func (m *NilMetrics) RecordTaskDuration(schedulerName string, priority int, duration time.Duration) {
}

func (m *NilMetrics) RecordTaskError(schedulerName string, taskName string) {}

func (m *NilMetrics) RecordQueueDepth(schedulerName string, depth int) {}

func (m *NilMetrics) RecordNamedTaskReplaced(schedulerName string, taskName string) {}

// =============================================================================
// Execution Records
// =============================================================================

// ExecutionRecord captures a completed task execution event.
type ExecutionRecord struct {
	TaskID        TaskID
	Name          string
	SchedulerName string
	Priority      int
	StartedAt     time.Time
	FinishedAt    time.Time
	Duration      time.Duration
	Failed        bool
}
