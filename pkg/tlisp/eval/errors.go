package eval

import (
	"fmt"

	"src.tled.dev/pkg/tlisp/vals"
)

// All evaluation failures are returned as error values from Eval, never
// thrown as panics, so a failing form cannot corrupt the interpreter state.

// UnboundVariableError is returned when looking up or assigning to a name
// that is not bound in any enclosing environment.
type UnboundVariableError struct {
	Name vals.Symbol
}

func (e UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// ArityError is returned when a function is called with the wrong number of
// arguments. Arguments are never silently truncated or padded.
type ArityError struct {
	Fn      string
	Want    int
	Got     int
	AtLeast bool
}

func (e ArityError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("%s: wants at least %d argument(s), got %d",
			e.Fn, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: wants %d argument(s), got %d", e.Fn, e.Want, e.Got)
}

// TypeError is returned when an operand has the wrong kind. It names the
// offending operand and the expected kind.
type TypeError struct {
	Fn   string
	Want string
	Got  any
}

func (e TypeError) Error() string {
	return fmt.Sprintf("%s: wants %s, got %s (%s)",
		e.Fn, e.Want, vals.Kind(e.Got), vals.Repr(e.Got))
}
