package eval

import "src.tled.dev/pkg/tlisp/vals"

// Predicate builtins. All of them return a boolean and never fail on any
// value kind.

func predFns() map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"null?":   typePred("null?", func(v any) bool { return v == nil }),
		"list?":   typePred("list?", func(v any) bool { _, ok := v.(vals.List); return ok }),
		"number?": typePred("number?", func(v any) bool { _, ok := v.(float64); return ok }),
		"string?": typePred("string?", func(v any) bool { _, ok := v.(string); return ok }),
		"symbol?": typePred("symbol?", func(v any) bool { _, ok := v.(vals.Symbol); return ok }),
		"hashmap?": typePred("hashmap?",
			func(v any) bool { _, ok := v.(vals.Map); return ok }),
		"eq?": eq,
		"not": not,
	}
}

func typePred(name string, pred func(any) bool) func([]any) (any, error) {
	return func(args []any) (any, error) {
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		return pred(args[0]), nil
	}
}

func eq(args []any) (any, error) {
	if err := checkArity("eq?", args, 2); err != nil {
		return nil, err
	}
	return vals.Equal(args[0], args[1]), nil
}

func not(args []any) (any, error) {
	if err := checkArity("not", args, 1); err != nil {
		return nil, err
	}
	return !vals.Bool(args[0]), nil
}
