package core

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// =============================================================================
// Error Taxonomy
// =============================================================================

var (
	// ErrNotAFunc indicates the submitted callable is not a Go func value.
	ErrNotAFunc = errors.New("callable is not a func")

	// ErrArityMismatch indicates the callable's parameter count does not match
	// the number of captured arguments. Detected at submission time; no Task
	// is created.
	ErrArityMismatch = errors.New("argument count does not match callable arity")

	// ErrArgTypeMismatch indicates a captured argument cannot be assigned to
	// the callable parameter at the same position. Detected at submission time.
	ErrArgTypeMismatch = errors.New("argument type is not assignable to callable parameter")

	// ErrAlreadyExecuted indicates an attempt to execute a Task whose argument
	// capture was already unpacked. The callable is NOT run again.
	ErrAlreadyExecuted = errors.New("task already executed")

	// ErrCaptureConsumed indicates an argument capture was unpacked twice.
	ErrCaptureConsumed = errors.New("argument capture already consumed")

	// ErrRunInProgress indicates RunAll was called while another RunAll on the
	// same scheduler had not finished (e.g. re-entrantly from a running task).
	ErrRunInProgress = errors.New("run already in progress")

	// ErrEmptyName indicates SubmitNamed was called with an empty name.
	ErrEmptyName = errors.New("named task requires a non-empty name")
)

// TaskError reports one failed task execution within a batch.
type TaskError struct {
	// TaskID identifies the failed task.
	TaskID TaskID

	// Name is the task's name ("" for anonymous tasks, which are identified
	// by TaskID and Index instead).
	Name string

	// Index is the task's position within the anonymous batch, or -1 for
	// named tasks.
	Index int

	// Err is the underlying invocation error.
	Err error
}

func (e TaskError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task %q (%s): %v", e.Name, e.TaskID, e.Err)
	}
	return fmt.Sprintf("task %s (batch index %d): %v", e.TaskID, e.Index, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

// TaskErrors is the collected result of RunAll. Empty on full success.
type TaskErrors []TaskError

// Err combines all task errors into a single error, or returns nil if the
// batch completed without failures.
func (es TaskErrors) Err() error {
	var combined error
	for _, e := range es {
		combined = multierr.Append(combined, e)
	}
	return combined
}
