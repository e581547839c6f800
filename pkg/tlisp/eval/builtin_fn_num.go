package eval

import "errors"

// Numeric builtins. All of them require numeric operands and fail with a
// TypeError naming the offending operand otherwise.

func numFns() map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"+": add,
		"-": sub,
		"*": mul,
		"/": div,
		"=": compareFn("=", func(a, b float64) bool { return a == b }),
		"<": compareFn("<", func(a, b float64) bool { return a < b }),
		">": compareFn(">", func(a, b float64) bool { return a > b }),
		"<=": compareFn("<=",
			func(a, b float64) bool { return a <= b }),
		">=": compareFn(">=",
			func(a, b float64) bool { return a >= b }),
	}
}

func toNumber(fn string, v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, TypeError{Fn: fn, Want: "number", Got: v}
	}
	return f, nil
}

func add(args []any) (any, error) {
	sum := 0.0
	for _, arg := range args {
		f, err := toNumber("+", arg)
		if err != nil {
			return nil, err
		}
		sum += f
	}
	return sum, nil
}

func sub(args []any) (any, error) {
	if err := checkArityAtLeast("-", args, 1); err != nil {
		return nil, err
	}
	first, err := toNumber("-", args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return -first, nil
	}
	for _, arg := range args[1:] {
		f, err := toNumber("-", arg)
		if err != nil {
			return nil, err
		}
		first -= f
	}
	return first, nil
}

func mul(args []any) (any, error) {
	product := 1.0
	for _, arg := range args {
		f, err := toNumber("*", arg)
		if err != nil {
			return nil, err
		}
		product *= f
	}
	return product, nil
}

func div(args []any) (any, error) {
	if err := checkArityAtLeast("/", args, 2); err != nil {
		return nil, err
	}
	first, err := toNumber("/", args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		f, err := toNumber("/", arg)
		if err != nil {
			return nil, err
		}
		if f == 0 {
			return nil, errors.New("/: division by zero")
		}
		first /= f
	}
	return first, nil
}

// compareFn builds a chained comparison builtin: (< 1 2 3) is true if every
// adjacent pair satisfies the comparison.
func compareFn(name string, cmp func(a, b float64) bool) func([]any) (any, error) {
	return func(args []any) (any, error) {
		if err := checkArityAtLeast(name, args, 2); err != nil {
			return nil, err
		}
		prev, err := toNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		for _, arg := range args[1:] {
			f, err := toNumber(name, arg)
			if err != nil {
				return nil, err
			}
			if !cmp(prev, f) {
				return false, nil
			}
			prev = f
		}
		return true, nil
	}
}
