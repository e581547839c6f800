package eval

// registerBuiltins registers all standard builtins in the global environment
// of an Evaler. The builtins are grouped by concern in the builtin_fn_*.go
// files.
func registerBuiltins(ev *Evaler) {
	for _, group := range []map[string]func([]any) (any, error){
		numFns(),
		listFns(),
		predFns(),
		strFns(),
		mapFns(),
		miscFns(ev),
	} {
		for name, impl := range group {
			ev.RegisterBuiltin(name, impl)
		}
	}
}

// checkArity returns an ArityError unless exactly n arguments are given.
func checkArity(fn string, args []any, n int) error {
	if len(args) != n {
		return ArityError{Fn: fn, Want: n, Got: len(args)}
	}
	return nil
}

// checkArityAtLeast returns an ArityError unless at least n arguments are
// given.
func checkArityAtLeast(fn string, args []any, n int) error {
	if len(args) < n {
		return ArityError{Fn: fn, Want: n, Got: len(args), AtLeast: true}
	}
	return nil
}
