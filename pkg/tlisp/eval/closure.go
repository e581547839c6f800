package eval

import (
	"fmt"

	"src.tled.dev/pkg/tlisp/vals"
)

// Builtin is a function value backed by a native Go procedure.
type Builtin struct {
	name string
	impl func(args []any) (any, error)
}

// NewBuiltin creates a Builtin with the given name and implementation.
func NewBuiltin(name string, impl func(args []any) (any, error)) *Builtin {
	return &Builtin{name, impl}
}

// Name returns the name the builtin was registered under.
func (b *Builtin) Name() string { return b.name }

// Call invokes the native procedure.
func (b *Builtin) Call(args []any) (any, error) { return b.impl(args) }

// Kind of a Builtin is "function".
func (b *Builtin) Kind() string { return "function" }

// Repr shows the identity of the builtin.
func (b *Builtin) Repr() string { return fmt.Sprintf("#<builtin %s>", b.name) }

// Closure is a function value defined in T-Lisp: parameter names, body forms
// and the environment captured at the definition site. The environment is
// shared by every closure that captures it; it is reclaimed by the garbage
// collector once no closure references it.
type Closure struct {
	name   string
	params []vals.Symbol
	body   []any
	env    *Env
}

// Kind of a Closure is "function".
func (c *Closure) Kind() string { return "function" }

// Repr shows the name (or anonymity) of the closure.
func (c *Closure) Repr() string {
	if c.name == "" {
		return fmt.Sprintf("#<lambda %p>", c)
	}
	return fmt.Sprintf("#<function %s>", c.name)
}

func (c *Closure) fnName() string {
	if c.name == "" {
		return "lambda"
	}
	return c.name
}

// Macro is a transformer with the same shape as a closure, except that its
// argument forms are never pre-evaluated, and the form it returns is
// evaluated at the call site.
type Macro struct {
	transformer *Closure
}

// Kind of a Macro is "macro".
func (m *Macro) Kind() string { return "macro" }

// Repr shows the name of the macro.
func (m *Macro) Repr() string {
	return fmt.Sprintf("#<macro %s>", m.transformer.name)
}
