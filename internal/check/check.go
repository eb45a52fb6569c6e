// Package check implements the assertions behind the `debug` build tag.
//
// Release builds compile Enabled to false, so guarded checks of the form
//
//	if check.Enabled && size <= 0 {
//	    check.Fail("Allocate", alloc.ErrZeroSize, "size=%d", size)
//	}
//
// are removed entirely by the compiler and the hot path stays unchecked.
// Build with `-tags debug` to turn every guard into a panic carrying a
// *Violation.
package check

import "fmt"

// Violation is the panic value raised by a failed check.
type Violation struct {
	Op     string // operation that detected the violation, e.g. "Pool.Free"
	Err    error  // sentinel describing the class of violation
	Detail string
}

func (v *Violation) Error() string {
	if v.Detail == "" {
		return fmt.Sprintf("%s: %v", v.Op, v.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", v.Op, v.Err, v.Detail)
}

func (v *Violation) Unwrap() error { return v.Err }

// Fail panics with a *Violation. Callers guard it with Enabled.
func Fail(op string, err error, format string, args ...any) {
	panic(&Violation{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)})
}

// Recover converts a recovered panic value back into a *Violation, or nil
// when r is not one. Useful in tests and at API boundaries that prefer errors.
func Recover(r any) *Violation {
	v, _ := r.(*Violation)
	return v
}
