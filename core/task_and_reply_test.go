package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubmitAndReply_Sequencing tests the task-then-reply handoff
// Main test items:
// 1. The task runs in the batch it was submitted into
// 2. The reply becomes eligible in the following batch
func TestSubmitAndReply_Sequencing(t *testing.T) {
	s := NewSchedulerWithConfig("reply", testConfig(t))

	var order []string
	require.NoError(t, s.SubmitAndReply(
		func() { order = append(order, "task") },
		func() { order = append(order, "reply") },
	))

	assert.Empty(t, s.RunAll())
	assert.Equal(t, []string{"task"}, order)

	assert.Empty(t, s.RunAll())
	assert.Equal(t, []string{"task", "reply"}, order)
}

// TestSubmitAndReply_PanicSkipsReply tests that a panicking task drops its reply
func TestSubmitAndReply_PanicSkipsReply(t *testing.T) {
	s := NewSchedulerWithConfig("reply-panic", testConfig(t))

	replied := false
	require.NoError(t, s.SubmitAndReply(
		func() { panic("task blew up") },
		func() { replied = true },
	))

	errs := s.RunAll()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Err.Error(), "task blew up")

	assert.Empty(t, s.RunAll())
	assert.False(t, replied)
}

// TestSubmitAndReplyWithResult_Success tests result flow to the reply
// Main test items:
// 1. The reply observes the value the task produced
// 2. The reply runs in the batch after the task's
func TestSubmitAndReplyWithResult_Success(t *testing.T) {
	s := NewSchedulerWithConfig("result", testConfig(t))

	var got int
	var gotErr error
	require.NoError(t, SubmitAndReplyWithResult(s,
		func() (int, error) { return 42, nil },
		func(result int, err error) {
			got = result
			gotErr = err
		},
	))

	assert.Empty(t, s.RunAll())
	assert.Empty(t, s.RunAll())

	assert.Equal(t, 42, got)
	assert.NoError(t, gotErr)
}

// TestSubmitAndReplyWithResult_TaskError tests that the reply receives the
// task's error instead of RunAll reporting it
func TestSubmitAndReplyWithResult_TaskError(t *testing.T) {
	s := NewSchedulerWithConfig("result-err", testConfig(t))
	sentinel := errors.New("fetch failed")

	var gotErr error
	require.NoError(t, SubmitAndReplyWithResult(s,
		func() (string, error) { return "", sentinel },
		func(result string, err error) { gotErr = err },
	))

	assert.Empty(t, s.RunAll())
	assert.Empty(t, s.RunAll())

	assert.ErrorIs(t, gotErr, sentinel)
}
