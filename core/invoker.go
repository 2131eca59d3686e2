package core

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// =============================================================================
// CallableBox: Type-erased, single-shot callable
// =============================================================================

// CallableBox owns exactly one callable value behind a uniform invocable
// representation. Boxing always takes ownership of the callable; a box is
// invoked at most once per Task lifetime.
type CallableBox struct {
	fn      reflect.Value
	ftype   reflect.Type
	invoked bool
}

// newCallableBox erases the concrete type of callable. Fails if callable is
// not a func value.
func newCallableBox(callable any) (*CallableBox, error) {
	if callable == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotAFunc)
	}
	v := reflect.ValueOf(callable)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunc, callable)
	}
	return &CallableBox{fn: v, ftype: v.Type()}, nil
}

// bind statically verifies that c matches the boxed callable: slot count
// against arity, and slot i against formal parameter i. Runs at submission
// time; invocation performs no further checks.
func (b *CallableBox) bind(c *ArgumentCapture) error {
	n := c.Len()
	if b.ftype.IsVariadic() {
		if n < b.ftype.NumIn()-1 {
			return fmt.Errorf("%w: callable wants at least %d args, capture holds %d",
				ErrArityMismatch, b.ftype.NumIn()-1, n)
		}
	} else if n != b.ftype.NumIn() {
		return fmt.Errorf("%w: callable wants %d args, capture holds %d",
			ErrArityMismatch, b.ftype.NumIn(), n)
	}

	for i := 0; i < n; i++ {
		if err := c.slots[i].assignableTo(paramType(b.ftype, i), i); err != nil {
			return err
		}
	}
	return nil
}

// invoke unpacks the capture positionally and calls the boxed callable with
// exactly that argument list. A second invocation attempt returns
// ErrAlreadyExecuted without running the callable.
//
// If the callable's last return value is a non-nil error, that error is the
// invocation result. A panic inside the callable is recovered and reported
// the same way; it never crosses the task boundary.
func (b *CallableBox) invoke(c *ArgumentCapture) (err error) {
	if b.invoked {
		return ErrAlreadyExecuted
	}
	b.invoked = true

	in, err := c.unpack(b.ftype)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callable panicked: %v", r)
		}
	}()

	out := b.fn.Call(in)
	if len(out) > 0 {
		last := out[len(out)-1]
		if last.Type() == errType && !last.IsNil() {
			return last.Interface().(error)
		}
	}
	return nil
}

// Invoked reports whether the box has already been called.
func (b *CallableBox) Invoked() bool {
	return b.invoked
}
