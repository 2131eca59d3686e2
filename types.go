package defersched

import "github.com/mkwren/go-defer-scheduler/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the defersched package for most use cases.

// Task is one deferred invocation unit owned by the scheduler
type Task = core.Task

// TaskID uniquely identifies a submitted task
type TaskID = core.TaskID

// TaskError reports one failed task execution within a batch
type TaskError = core.TaskError

// TaskErrors is the collected result of RunAll
type TaskErrors = core.TaskErrors

// Scheduler owns the anonymous and named task collections
type Scheduler = core.Scheduler

// SchedulerConfig holds configuration options for a Scheduler
type SchedulerConfig = core.SchedulerConfig

// SchedulerState tracks the scheduler lifecycle (idle, accepting, running)
type SchedulerState = core.SchedulerState

// Arg is one captured positional argument
type Arg = core.Arg

// TransferMode records whether an argument was captured by transfer or loan
type TransferMode = core.TransferMode

// ExecutionRecord captures a completed task execution event
type ExecutionRecord = core.ExecutionRecord

// Logger is the structured logging seam
type Logger = core.Logger

// Field is a key-value pair for structured logging
type Field = core.Field

// Scheduler state constants
const (
	StateIdle      SchedulerState = core.StateIdle
	StateAccepting SchedulerState = core.StateAccepting
	StateRunning   SchedulerState = core.StateRunning
)

// Transfer mode constants
const (
	Borrowed TransferMode = core.Borrowed
	Owned    TransferMode = core.Owned
)

// Error taxonomy
var (
	ErrNotAFunc        = core.ErrNotAFunc
	ErrArityMismatch   = core.ErrArityMismatch
	ErrArgTypeMismatch = core.ErrArgTypeMismatch
	ErrAlreadyExecuted = core.ErrAlreadyExecuted
	ErrCaptureConsumed = core.ErrCaptureConsumed
	ErrRunInProgress   = core.ErrRunInProgress
	ErrEmptyName       = core.ErrEmptyName
)

// Convenience constructors and helpers
var (
	DefaultSchedulerConfig = core.DefaultSchedulerConfig
	NewZapLogger           = core.NewZapLogger
	NewDevelopmentLogger   = core.NewDevelopmentLogger
	NewNoOpLogger          = core.NewNoOpLogger
	F                      = core.F
)

// Borrow captures a duplicate of v; the caller keeps its own binding.
func Borrow[T any](v T) Arg {
	return core.Borrow(v)
}

// Own captures the value behind src and zeroes *src, transferring ownership
// into the task.
func Own[T any](src *T) Arg {
	return core.Own(src)
}

// NewTask combines argument capture and callable boxing into a standalone
// anonymous task. This is re-exported for advanced users; most code submits
// straight to a Scheduler.
func NewTask(callable any, args ...any) (*Task, error) {
	return core.NewTask(callable, args...)
}

// TaskWithResult and ReplyWithResult for the generic submit-and-reply pattern
type TaskWithResult[T any] func() (T, error)
type ReplyWithResult[T any] func(result T, err error)

// SubmitAndReplyWithResult submits a result-producing task plus a reply that
// consumes the result in the next run.
func SubmitAndReplyWithResult[T any](s *Scheduler, task TaskWithResult[T], reply ReplyWithResult[T]) error {
	return core.SubmitAndReplyWithResult(s, core.TaskWithResult[T](task), core.ReplyWithResult[T](reply))
}
