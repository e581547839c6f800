// Package tlisp provides the T-Lisp interpreter facade.
//
// The facade owns a root environment and exposes the operations embedders
// need: parsing source into forms, evaluating forms, executing whole sources,
// and registering native builtins. The editor extends the interpreter through
// RegisterBuiltin; everything else about the language lives in the parse and
// eval subpackages.
package tlisp

import (
	_ "embed"
	"fmt"
	"io"

	"src.tled.dev/pkg/tlisp/eval"
	"src.tled.dev/pkg/tlisp/parse"
)

//go:embed prelude.tlisp
var preludeSrc string

// Interp is a T-Lisp interpreter.
type Interp struct {
	ev *eval.Evaler
}

// New creates an interpreter with the standard builtins registered and the
// embedded prelude loaded.
func New() *Interp {
	in := &Interp{eval.NewEvaler()}
	if _, err := in.Execute("[prelude]", preludeSrc); err != nil {
		// The prelude is embedded in the binary; failing to load it is a bug,
		// not an input error.
		panic(fmt.Sprintf("load prelude: %v", err))
	}
	return in
}

// Parse parses source code into its ordered top-level forms.
func (in *Interp) Parse(srcName, src string) ([]any, error) {
	return parse.Parse(srcName, src)
}

// Eval evaluates a single form in the global environment.
func (in *Interp) Eval(form any) (any, error) {
	return in.ev.Eval(form, in.ev.Global())
}

// Execute parses and evaluates source code that may contain multiple
// top-level forms, running them left-to-right and yielding the value of the
// last one. All failures, lexical through runtime, are returned as error
// values; a failed Execute never corrupts interpreter state.
func (in *Interp) Execute(srcName, src string) (any, error) {
	forms, err := parse.Parse(srcName, src)
	if err != nil {
		return nil, err
	}
	return in.ev.EvalAll(forms)
}

// RegisterBuiltin registers a native procedure in the global environment.
func (in *Interp) RegisterBuiltin(name string, impl func(args []any) (any, error)) {
	in.ev.RegisterBuiltin(name, impl)
}

// Global returns the root environment.
func (in *Interp) Global() *eval.Env { return in.ev.Global() }

// SetOutput sets where the print builtin writes.
func (in *Interp) SetOutput(w io.Writer) { in.ev.Output = w }
