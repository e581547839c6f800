package eval

import "src.tled.dev/pkg/tlisp/vals"

// Env is a lexical environment: a frame of name to value bindings, plus an
// optional parent frame used for lookup only.
//
// The global environment lives as long as the Evaler. Frames created for
// function calls and let forms are discarded when the call returns, unless
// they are captured by a closure, which extends their lifetime.
type Env struct {
	vars   map[vals.Symbol]any
	parent *Env
}

// NewEnv creates an empty environment with the given parent. The parent may
// be nil, in which case the environment is a root.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[vals.Symbol]any), parent: parent}
}

// Lookup searches this frame and then the parent chain, returning the value
// bound to name. It returns an [UnboundVariableError] if the chain is
// exhausted.
func (e *Env) Lookup(name vals.Symbol) (any, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, nil
		}
	}
	return nil, UnboundVariableError{name}
}

// Define binds name in the current frame only, inserting or overwriting. It
// never touches parent frames, so a local Define shadows outer bindings.
func (e *Env) Define(name vals.Symbol, v any) {
	e.vars[name] = v
}

// Set assigns to an existing binding, mutating the frame that owns the name.
// Unlike Define, it requires the name to already be bound somewhere in the
// chain, and returns an [UnboundVariableError] otherwise.
func (e *Env) Set(name vals.Symbol, v any) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return nil
		}
	}
	return UnboundVariableError{name}
}

// Has reports whether name is bound in this frame or any parent frame.
func (e *Env) Has(name vals.Symbol) bool {
	_, err := e.Lookup(name)
	return err == nil
}
