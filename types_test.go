package defersched_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	defersched "github.com/mkwren/go-defer-scheduler"
	"github.com/mkwren/go-defer-scheduler/core"
)

// TestErrorReexports tests that every sentinel is reachable from the facade
// Main test items:
// 1. Each facade error is the same sentinel core produces
// 2. Facade-only callers can match errors without importing core
func TestErrorReexports(t *testing.T) {
	pairs := map[error]error{
		defersched.ErrNotAFunc:        core.ErrNotAFunc,
		defersched.ErrArityMismatch:   core.ErrArityMismatch,
		defersched.ErrArgTypeMismatch: core.ErrArgTypeMismatch,
		defersched.ErrAlreadyExecuted: core.ErrAlreadyExecuted,
		defersched.ErrCaptureConsumed: core.ErrCaptureConsumed,
		defersched.ErrRunInProgress:   core.ErrRunInProgress,
		defersched.ErrEmptyName:       core.ErrEmptyName,
	}
	for facade, sentinel := range pairs {
		assert.ErrorIs(t, facade, sentinel)
	}
}

// TestFacadeErrorMatching tests matching a submission error via the facade only
func TestFacadeErrorMatching(t *testing.T) {
	s := defersched.New("facade")

	err := s.Submit(func(a int) {}, 1, 2)
	assert.ErrorIs(t, err, defersched.ErrArityMismatch)
}
