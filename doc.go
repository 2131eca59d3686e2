// Package defersched provides a deferred-invocation task scheduler for Go.
//
// The library packages a call (an arbitrary callable plus its positional
// arguments) to be executed later rather than immediately. Each argument is
// transferred from the call site into task storage exactly once, preserving
// whether the caller handed over ownership or merely lent a reference.
//
// # Quick Start
//
// Create a scheduler, submit tasks, and run the batch:
//
//	s := defersched.New("main")
//
//	s.Submit(func(msg string, n int) {
//		fmt.Println(msg, n)
//	}, "hello", 42)
//
//	errs := s.RunAll() // executes every queued task, collecting failures
//
// # Key Concepts
//
// Argument capture: raw values passed to Submit are borrowed (duplicated; the
// caller's binding stays valid). Wrap an argument with Own to transfer it:
// the caller's binding is zeroed and ownership moves into the task.
//
//	payload := []byte("large buffer")
//	s.Submit(process, defersched.Own(&payload))
//	// payload is nil here; the task owns the buffer
//
// Arity and argument types are checked at submission time. A mismatched
// submission returns an error immediately and no task is created.
//
// Named tasks: SubmitNamed keys a task by name; named tasks execute after the
// anonymous batch, in sorted key order. Submitting under an existing name
// replaces the prior task.
//
// Priorities: a scheduler created with NewPriority executes anonymous tasks
// priority-descending, with submission order breaking ties.
//
// # Execution Model
//
// RunAll is synchronous and exhaustive: it executes every currently-queued
// task on the caller's goroutine and does not return until the batch is done.
// A failing task never aborts the batch; failures are collected into the
// returned TaskErrors. Tasks submitted by a running task wait for the next
// RunAll.
//
// For more details, see https://github.com/mkwren/go-defer-scheduler
package defersched
