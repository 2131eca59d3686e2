package core

import (
	"reflect"
	"runtime"

	"github.com/google/uuid"
)

// TaskID uniquely identifies a submitted task.
type TaskID string

func newTaskID() TaskID {
	return TaskID(uuid.NewString())
}

func (id TaskID) String() string {
	return string(id)
}

// =============================================================================
// Task: One deferred invocation unit
// =============================================================================

// Task pairs a CallableBox with an ArgumentCapture to form a single niladic
// deferred computation, plus optional scheduling metadata (name, priority).
//
// A Task is immutable after creation except for being handed over to
// scheduler storage. Executing it a second time yields ErrAlreadyExecuted.
type Task struct {
	id       TaskID
	name     string
	funcName string
	priority int
	box      *CallableBox
	capture  *ArgumentCapture
}

// NewTask combines argument capture and callable boxing into an anonymous,
// priority-0 task. Arity and argument types are verified here; on error no
// Task is created.
func NewTask(callable any, args ...any) (*Task, error) {
	return newTask("", 0, callable, args...)
}

func newTask(name string, priority int, callable any, args ...any) (*Task, error) {
	box, err := newCallableBox(callable)
	if err != nil {
		return nil, err
	}

	cap := capture(args...)
	if err := box.bind(cap); err != nil {
		return nil, err
	}

	return &Task{
		id:       newTaskID(),
		name:     name,
		funcName: resolveFuncName(box.fn),
		priority: priority,
		box:      box,
		capture:  cap,
	}, nil
}

// ID returns the task's unique identifier.
func (t *Task) ID() TaskID {
	return t.id
}

// Name returns the task's name, or "" for anonymous tasks.
func (t *Task) Name() string {
	return t.name
}

// Priority returns the task's numeric priority (default 0, higher runs first
// on a priority scheduler).
func (t *Task) Priority() int {
	return t.priority
}

// Executed reports whether the task has already run.
func (t *Task) Executed() bool {
	return t.box.Invoked()
}

// Execute unpacks the captured arguments and invokes the boxed callable
// exactly once. Returns ErrAlreadyExecuted on re-execution attempts.
func (t *Task) Execute() error {
	return t.box.invoke(t.capture)
}

// displayName returns the task's name for logs and execution records,
// falling back to the callable's resolved func name.
func (t *Task) displayName() string {
	if t.name != "" {
		return t.name
	}
	return t.funcName
}

// resolveFuncName recovers a human-readable name for the boxed callable.
func resolveFuncName(fn reflect.Value) string {
	pc := fn.Pointer()
	if pc == 0 {
		return "anonymous"
	}
	f := runtime.FuncForPC(pc)
	if f == nil || f.Name() == "" {
		return "anonymous"
	}
	return f.Name()
}
