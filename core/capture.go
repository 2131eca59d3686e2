package core

import (
	"fmt"
	"reflect"
)

// =============================================================================
// TransferMode: How an argument travels from the call site into the Task
// =============================================================================

type TransferMode int

const (
	// Borrowed duplicates the value; the caller's binding stays valid and
	// unchanged. This is the default for raw values passed to Submit.
	Borrowed TransferMode = iota

	// Owned transfers the value; the caller's binding is zeroed and must not
	// be read again.
	Owned
)

func (m TransferMode) String() string {
	switch m {
	case Borrowed:
		return "borrowed"
	case Owned:
		return "owned"
	default:
		return fmt.Sprintf("TransferMode(%d)", int(m))
	}
}

// =============================================================================
// Arg: One captured positional argument
// =============================================================================

// Arg records one captured value together with its static type identity and
// transfer mode. Slots are ordered; the count is fixed at submission time.
type Arg struct {
	value any
	typ   reflect.Type
	mode  TransferMode
}

// Borrow captures a duplicate of v. The caller keeps its own binding.
//
// The static type T is recorded even when v is nil, so a Borrow[io.Writer](nil)
// slot still binds to an io.Writer parameter.
func Borrow[T any](v T) Arg {
	return Arg{value: v, typ: typeFor[T](), mode: Borrowed}
}

// Own captures the value behind src and zeroes *src. After the enclosing
// Submit returns, the caller's binding is empty and must not be used.
//
// The value travels straight from *src into slot storage: exactly one read
// and one write, with no intermediate holder.
func Own[T any](src *T) Arg {
	var zero T
	v := *src
	*src = zero
	return Arg{value: v, typ: typeFor[T](), mode: Owned}
}

// Mode reports whether the slot was captured by transfer or by loan.
func (a Arg) Mode() TransferMode {
	return a.mode
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// assignableTo checks the slot against the formal parameter type at position
// index. Called at submission time only.
func (a Arg) assignableTo(param reflect.Type, index int) error {
	if a.typ == nil {
		// Untyped nil: legal for any parameter kind that has a nil value.
		switch param.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface,
			reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return nil
		}
		return fmt.Errorf("%w: slot %d is untyped nil, parameter is %s",
			ErrArgTypeMismatch, index, param)
	}
	if !a.typ.AssignableTo(param) {
		return fmt.Errorf("%w: slot %d holds %s, parameter is %s",
			ErrArgTypeMismatch, index, a.typ, param)
	}
	return nil
}

// reflectValue produces the call argument for this slot. param is the formal
// parameter type; it supplies the zero value when the captured value is nil.
func (a Arg) reflectValue(param reflect.Type) reflect.Value {
	if a.value == nil {
		return reflect.Zero(param)
	}
	v := reflect.ValueOf(a.value)
	if v.Type() != param {
		// Static type was an interface wider than the dynamic type, or the
		// parameter is an interface. Assignability was verified at bind time.
		converted := reflect.New(param).Elem()
		converted.Set(v)
		return converted
	}
	return v
}

// =============================================================================
// ArgumentCapture: An ordered bundle of Args, consumed at most once
// =============================================================================

// ArgumentCapture is a fixed-size, positionally-indexed bundle of captured
// arguments. Its length equals the arity of the paired callable and it is
// unpacked at most once.
type ArgumentCapture struct {
	slots    []Arg
	consumed bool
}

// capture packages a call-site argument list. Arg values pass through
// unchanged; any other value is implicitly borrowed.
//
// Each argument undergoes exactly one data-moving or data-copying operation
// between the Submit call frame and slot storage.
func capture(args ...any) *ArgumentCapture {
	slots := make([]Arg, len(args))
	for i, raw := range args {
		if a, ok := raw.(Arg); ok {
			slots[i] = a
			continue
		}
		var typ reflect.Type
		if raw != nil {
			typ = reflect.TypeOf(raw)
		}
		slots[i] = Arg{value: raw, typ: typ, mode: Borrowed}
	}
	return &ArgumentCapture{slots: slots}
}

// Len returns the number of captured slots.
func (c *ArgumentCapture) Len() int {
	return len(c.slots)
}

// Consumed reports whether the capture was already unpacked.
func (c *ArgumentCapture) Consumed() bool {
	return c.consumed
}

// unpack expands the capture into positional call arguments for ft. Each slot
// is read exactly once; slot storage is released as it is read.
func (c *ArgumentCapture) unpack(ft reflect.Type) ([]reflect.Value, error) {
	if c.consumed {
		return nil, ErrCaptureConsumed
	}
	c.consumed = true

	in := make([]reflect.Value, len(c.slots))
	for i := range c.slots {
		in[i] = c.slots[i].reflectValue(paramType(ft, i))
		c.slots[i] = Arg{} // Release the reference
	}
	return in, nil
}

// paramType returns the formal parameter type at position i, unrolling the
// variadic tail.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}
