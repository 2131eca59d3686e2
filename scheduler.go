package defersched

import (
	"github.com/mkwren/go-defer-scheduler/core"
)

// New creates a FIFO scheduler: anonymous tasks execute in strict submission
// order, named tasks afterwards in sorted key order.
func New(name string) *Scheduler {
	return core.NewScheduler(name)
}

// NewWithConfig creates a FIFO scheduler with custom configuration
// (logger, metrics, history capacity, named-task retention).
func NewWithConfig(name string, config *SchedulerConfig) *Scheduler {
	return core.NewSchedulerWithConfig(name, config)
}

// NewPriority creates a priority scheduler: anonymous tasks execute
// priority-descending, submission order breaking ties.
func NewPriority(name string) *Scheduler {
	return core.NewPriorityScheduler(name)
}

// NewPriorityWithConfig creates a priority scheduler with custom
// configuration.
func NewPriorityWithConfig(name string, config *SchedulerConfig) *Scheduler {
	return core.NewPrioritySchedulerWithConfig(name, config)
}
