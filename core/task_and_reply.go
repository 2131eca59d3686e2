package core

// =============================================================================
// Submit-and-Reply Pattern
// =============================================================================

// TaskWithResult is a deferred computation producing a result of type T.
type TaskWithResult[T any] func() (T, error)

// ReplyWithResult consumes the task's result once the task has run.
type ReplyWithResult[T any] func(result T, err error)

// SubmitAndReply submits task; once it has run without panicking, reply is
// submitted re-entrantly and becomes eligible in the next RunAll. A panic in
// task is reported as that task's invocation error and the reply is skipped.
func (s *Scheduler) SubmitAndReply(task func(), reply func()) error {
	return s.Submit(func() error {
		task()
		return s.Submit(reply)
	})
}

// SubmitAndReplyWithResult submits a result-producing task and a reply that
// consumes the result. The result and error flow to the reply through closure
// capture; the sequential batch order guarantees the reply observes the final
// values written by the task.
//
// The reply runs even when the task returned an error (the error is handed to
// the reply, not to RunAll). Only a panic in the task skips the reply.
func SubmitAndReplyWithResult[T any](
	s *Scheduler,
	task TaskWithResult[T],
	reply ReplyWithResult[T],
) error {
	var result T
	var err error

	wrappedReply := func() {
		reply(result, err)
	}

	return s.Submit(func() error {
		result, err = task()
		return s.Submit(wrappedReply)
	})
}
