package core

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBorrow_KeepsCallerBinding tests borrow-mode capture
// Main test items:
// 1. The caller's binding stays valid and unchanged
// 2. The slot records Borrowed mode
func TestBorrow_KeepsCallerBinding(t *testing.T) {
	original := []int{1, 2, 3}

	a := Borrow(original)

	assert.Equal(t, []int{1, 2, 3}, original, "caller binding must stay usable")
	assert.Equal(t, Borrowed, a.Mode())
}

// TestOwn_ZeroesCallerBinding tests transfer-mode capture
// Main test items:
// 1. The caller's binding is zeroed after capture
// 2. The slot records Owned mode and holds the transferred value
func TestOwn_ZeroesCallerBinding(t *testing.T) {
	payload := []byte("buffer")

	a := Own(&payload)

	assert.Nil(t, payload, "caller binding must be emptied by the transfer")
	assert.Equal(t, Owned, a.Mode())
	assert.Equal(t, []byte("buffer"), a.value)
}

// TestOwn_StructValue tests transfer of a struct-typed binding
func TestOwn_StructValue(t *testing.T) {
	type record struct {
		Name string
		N    int
	}
	src := record{Name: "x", N: 7}

	a := Own(&src)

	assert.Equal(t, record{}, src)
	assert.Equal(t, record{Name: "x", N: 7}, a.value)
}

// TestCapture_ImplicitBorrow tests that raw values default to borrow mode
func TestCapture_ImplicitBorrow(t *testing.T) {
	c := capture("msg", 42)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, Borrowed, c.slots[0].Mode())
	assert.Equal(t, Borrowed, c.slots[1].Mode())
	assert.Equal(t, "msg", c.slots[0].value)
	assert.Equal(t, 42, c.slots[1].value)
}

// TestCapture_ZeroArgs tests the empty capture
// Main test items:
// 1. Zero arguments produce a valid, empty capture
// 2. The empty capture unpacks against a niladic callable
func TestCapture_ZeroArgs(t *testing.T) {
	c := capture()

	require.Equal(t, 0, c.Len())

	in, err := c.unpack(reflect.TypeOf(func() {}))
	require.NoError(t, err)
	assert.Empty(t, in)
}

// TestCapture_ConsumedOnce tests the at-most-once unpack invariant
// Main test items:
// 1. The first unpack succeeds and marks the capture consumed
// 2. A second unpack fails with ErrCaptureConsumed
func TestCapture_ConsumedOnce(t *testing.T) {
	c := capture(1)
	ft := reflect.TypeOf(func(int) {})

	_, err := c.unpack(ft)
	require.NoError(t, err)
	assert.True(t, c.Consumed())

	_, err = c.unpack(ft)
	assert.ErrorIs(t, err, ErrCaptureConsumed)
}

// TestCapture_SameValueTwoSlots tests duplicating one binding into two slots
func TestCapture_SameValueTwoSlots(t *testing.T) {
	x := 7

	c := capture(Borrow(x), Borrow(x))

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 7, c.slots[0].value)
	assert.Equal(t, 7, c.slots[1].value)
	assert.Equal(t, 7, x)
}

// TestCapture_NilWithStaticType tests that a typed nil keeps its type identity
// Main test items:
// 1. Borrow[io.Writer](nil) binds to an io.Writer parameter
// 2. An untyped nil raw argument binds to any nilable parameter
func TestCapture_NilWithStaticType(t *testing.T) {
	writerParam := reflect.TypeOf(func(io.Writer) {}).In(0)

	typed := Borrow[io.Writer](nil)
	assert.NoError(t, typed.assignableTo(writerParam, 0))

	c := capture(nil)
	ptrParam := reflect.TypeOf(func(*int) {}).In(0)
	assert.NoError(t, c.slots[0].assignableTo(ptrParam, 0))

	intParam := reflect.TypeOf(func(int) {}).In(0)
	assert.ErrorIs(t, c.slots[0].assignableTo(intParam, 0), ErrArgTypeMismatch)
}

// TestTransferMode_String tests the mode labels used in logs
func TestTransferMode_String(t *testing.T) {
	assert.Equal(t, "borrowed", Borrowed.String())
	assert.Equal(t, "owned", Owned.String())
}
