package core

// =============================================================================
// SchedulerConfig: Configuration for Scheduler
// =============================================================================

// SchedulerConfig holds configuration options for a Scheduler.
// All fields are optional; zero values select the defaults.
type SchedulerConfig struct {
	// Logger receives scheduler lifecycle and task execution logs.
	// Defaults to NoOpLogger.
	Logger Logger

	// Metrics is called to record execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// HistoryCapacity bounds the execution-record ring buffer.
	// Defaults to 100.
	HistoryCapacity int

	// RemoveNamedAfterRun removes a named task from the keyed collection once
	// it has executed. The default (false) keeps named tasks keyed after a
	// run; later runs skip them.
	RemoveNamedAfterRun bool
}

// DefaultSchedulerConfig returns a config with default handlers.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Logger:          NewNoOpLogger(),
		Metrics:         &NilMetrics{},
		HistoryCapacity: defaultHistoryCapacity,
	}
}
