package core

import (
	"sync"
	"time"
)

// =============================================================================
// SchedulerState
// =============================================================================

// SchedulerState tracks the scheduler's lifecycle:
// Idle -> Accepting (on submit) -> Running (during RunAll) -> Idle.
type SchedulerState int

const (
	// StateIdle: no batch in progress and nothing submitted since the last run.
	StateIdle SchedulerState = iota

	// StateAccepting: tasks have been submitted and await the next RunAll.
	StateAccepting

	// StateRunning: RunAll is executing the current batch.
	StateRunning
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccepting:
		return "accepting"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// =============================================================================
// Scheduler
// =============================================================================

// Scheduler owns an ordered collection of anonymous tasks and a keyed
// collection of named tasks, and executes them in batches.
//
// Execution is synchronous and cooperative: every operation runs to
// completion on the caller's goroutine. The collections are still
// mutex-guarded, so Submit* from another goroutine against a concurrent
// RunAll stays safe.
type Scheduler struct {
	name  string
	queue taskQueue
	named *namedTaskStore

	mu    sync.Mutex
	state SchedulerState

	logger  Logger
	metrics Metrics
	history executionHistory

	removeNamedAfterRun bool
}

// NewScheduler creates a FIFO scheduler: anonymous tasks execute in strict
// submission order.
func NewScheduler(name string) *Scheduler {
	return NewSchedulerWithConfig(name, DefaultSchedulerConfig())
}

// NewSchedulerWithConfig creates a FIFO scheduler with custom configuration.
func NewSchedulerWithConfig(name string, config *SchedulerConfig) *Scheduler {
	return newScheduler(name, newFIFOTaskQueue(), config)
}

// NewPriorityScheduler creates a priority scheduler: anonymous tasks execute
// priority-descending, with submission order breaking ties.
func NewPriorityScheduler(name string) *Scheduler {
	return NewPrioritySchedulerWithConfig(name, DefaultSchedulerConfig())
}

// NewPrioritySchedulerWithConfig creates a priority scheduler with custom
// configuration.
func NewPrioritySchedulerWithConfig(name string, config *SchedulerConfig) *Scheduler {
	return newScheduler(name, newPriorityTaskQueue(), config)
}

func newScheduler(name string, queue taskQueue, config *SchedulerConfig) *Scheduler {
	s := &Scheduler{
		name:  name,
		queue: queue,
		named: newNamedTaskStore(),
		state: StateIdle,
	}

	if config == nil {
		config = DefaultSchedulerConfig()
	}
	s.logger = config.Logger
	s.metrics = config.Metrics
	s.history = newExecutionHistory(config.HistoryCapacity)
	s.removeNamedAfterRun = config.RemoveNamedAfterRun

	if s.logger == nil {
		s.logger = NewNoOpLogger()
	}
	if s.metrics == nil {
		s.metrics = &NilMetrics{}
	}

	return s
}

// Name returns the scheduler's name.
func (s *Scheduler) Name() string {
	return s.name
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// =============================================================================
// Submission
// =============================================================================

// Submit captures the callable and its arguments as an anonymous FIFO task.
//
// Raw argument values are borrowed (duplicated); wrap an argument with Own to
// transfer it, or with Borrow to make the loan explicit. Arity and argument
// types are checked here: on mismatch the error is returned immediately and
// nothing is queued.
func (s *Scheduler) Submit(callable any, args ...any) error {
	return s.submitAnonymous(0, callable, args...)
}

// SubmitWithPriority is Submit with a numeric priority attached. On a FIFO
// scheduler the priority is recorded but does not affect ordering, matching
// the FIFO queue's contract.
func (s *Scheduler) SubmitWithPriority(priority int, callable any, args ...any) error {
	return s.submitAnonymous(priority, callable, args...)
}

func (s *Scheduler) submitAnonymous(priority int, callable any, args ...any) error {
	task, err := newTask("", priority, callable, args...)
	if err != nil {
		s.logger.Error("submission rejected",
			F("scheduler", s.name), F("error", err))
		return err
	}

	s.queue.Push(task)
	s.markAccepting()

	depth := s.queue.Len()
	s.metrics.RecordQueueDepth(s.name, depth)
	s.logger.Debug("task submitted",
		F("scheduler", s.name), F("task_id", task.id),
		F("priority", priority), F("queued", depth))
	return nil
}

// SubmitNamed captures the callable and its arguments as a named task. An
// existing task under the same name is discarded unexecuted and replaced;
// this is reported through the logger and metrics, not as an error.
func (s *Scheduler) SubmitNamed(name string, callable any, args ...any) error {
	if name == "" {
		return ErrEmptyName
	}

	task, err := newTask(name, 0, callable, args...)
	if err != nil {
		s.logger.Error("submission rejected",
			F("scheduler", s.name), F("name", name), F("error", err))
		return err
	}

	if replaced := s.named.Put(name, task); replaced != nil {
		s.metrics.RecordNamedTaskReplaced(s.name, name)
		s.logger.Warn("named task replaced",
			F("scheduler", s.name), F("name", name),
			F("replaced_id", replaced.id), F("task_id", task.id))
	}
	s.markAccepting()

	s.logger.Debug("named task submitted",
		F("scheduler", s.name), F("name", name), F("task_id", task.id))
	return nil
}

func (s *Scheduler) markAccepting() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.state = StateAccepting
	}
	s.mu.Unlock()
}

// =============================================================================
// Execution
// =============================================================================

// RunAll synchronously executes every currently-queued task: anonymous tasks
// first, in queue order, then named tasks in sorted key order. A failing task
// never aborts the batch; its error joins the returned collection.
//
// The batch bounds are fixed at entry. Tasks submitted re-entrantly by a
// running task become eligible in the next RunAll. Calling RunAll from inside
// a running task yields a single ErrRunInProgress entry.
func (s *Scheduler) RunAll() TaskErrors {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return TaskErrors{{Index: -1, Err: ErrRunInProgress}}
	}
	s.state = StateRunning
	s.mu.Unlock()

	batch := s.queue.PopAll()
	entries := s.named.SortedEntries()

	var errs TaskErrors
	for i, t := range batch {
		if err := s.executeTask(t, i); err != nil {
			errs = append(errs, TaskError{TaskID: t.id, Name: t.name, Index: i, Err: err})
		}
	}

	for _, e := range entries {
		current, ok := s.named.Get(e.name)
		if !ok || current != e.task {
			// Removed or replaced while the batch was running. The snapshot
			// task was discarded; the replacement waits for the next run.
			continue
		}
		if e.task.Executed() {
			// Already executed in an earlier run.
			continue
		}
		if err := s.executeTask(e.task, -1); err != nil {
			errs = append(errs, TaskError{TaskID: e.task.id, Name: e.name, Index: -1, Err: err})
		}
		if s.removeNamedAfterRun {
			s.named.RemoveMatching(e.name, e.task)
		}
	}

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	s.logger.Info("batch finished",
		F("scheduler", s.name),
		F("anonymous", len(batch)), F("named", len(entries)),
		F("failed", len(errs)))
	return errs
}

func (s *Scheduler) executeTask(t *Task, index int) error {
	startedAt := time.Now()
	err := t.Execute()
	finishedAt := time.Now()
	duration := finishedAt.Sub(startedAt)

	s.metrics.RecordTaskDuration(s.name, t.priority, duration)
	s.history.Add(ExecutionRecord{
		TaskID:        t.id,
		Name:          t.displayName(),
		SchedulerName: s.name,
		Priority:      t.priority,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		Duration:      duration,
		Failed:        err != nil,
	})

	if err != nil {
		s.metrics.RecordTaskError(s.name, t.displayName())
		s.logger.Error("task failed",
			F("scheduler", s.name), F("task", t.displayName()),
			F("task_id", t.id), F("index", index), F("error", err))
		return err
	}

	s.logger.Debug("task executed",
		F("scheduler", s.name), F("task", t.displayName()),
		F("duration", duration))
	return nil
}

// =============================================================================
// Introspection and Teardown
// =============================================================================

// PendingCount returns the number of held tasks: queued anonymous tasks plus
// every entry in the named collection (named tasks stay counted after a run
// while they remain keyed).
func (s *Scheduler) PendingCount() int {
	return s.queue.Len() + s.named.Len()
}

// RecentExecutions returns up to limit execution records, most recent first.
// limit <= 0 returns all retained records.
func (s *Scheduler) RecentExecutions(limit int) []ExecutionRecord {
	return s.history.Recent(limit)
}

// LastExecution returns the most recent execution record, if any.
func (s *Scheduler) LastExecution() (ExecutionRecord, bool) {
	return s.history.Last()
}

// Drain discards every unexecuted task without running it and returns the
// scheduler to the idle state. Used at teardown.
func (s *Scheduler) Drain() {
	dropped := s.PendingCount()
	s.queue.Clear()
	s.named.Clear()

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Info("scheduler drained",
			F("scheduler", s.name), F("dropped", dropped))
	}
}
