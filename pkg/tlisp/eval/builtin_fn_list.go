package eval

import (
	"errors"

	"src.tled.dev/pkg/tlisp/vals"
)

// List builtins.

func listFns() map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"list":   listFn,
		"cons":   cons,
		"car":    car,
		"cdr":    cdr,
		"length": length,
		"append": appendFn,
		"nth":    nth,
	}
}

func toList(fn string, v any) (vals.List, error) {
	list, ok := v.(vals.List)
	if !ok {
		return nil, TypeError{Fn: fn, Want: "list", Got: v}
	}
	return list, nil
}

func listFn(args []any) (any, error) {
	return vals.List(append([]any{}, args...)), nil
}

func cons(args []any) (any, error) {
	if err := checkArity("cons", args, 2); err != nil {
		return nil, err
	}
	tail, err := toList("cons", args[1])
	if err != nil {
		return nil, err
	}
	out := make(vals.List, 0, len(tail)+1)
	out = append(out, args[0])
	out = append(out, tail...)
	return out, nil
}

func car(args []any) (any, error) {
	if err := checkArity("car", args, 1); err != nil {
		return nil, err
	}
	list, err := toList("car", args[0])
	if err != nil {
		return nil, err
	}
	// Taking the head of an empty list is an error, not nil.
	if len(list) == 0 {
		return nil, errors.New("car: empty list")
	}
	return list[0], nil
}

func cdr(args []any) (any, error) {
	if err := checkArity("cdr", args, 1); err != nil {
		return nil, err
	}
	list, err := toList("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New("cdr: empty list")
	}
	return vals.List(append([]any{}, list[1:]...)), nil
}

func length(args []any) (any, error) {
	if err := checkArity("length", args, 1); err != nil {
		return nil, err
	}
	list, err := toList("length", args[0])
	if err != nil {
		return nil, err
	}
	return float64(len(list)), nil
}

func appendFn(args []any) (any, error) {
	out := vals.List{}
	for _, arg := range args {
		list, err := toList("append", arg)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

func nth(args []any) (any, error) {
	if err := checkArity("nth", args, 2); err != nil {
		return nil, err
	}
	list, err := toList("nth", args[0])
	if err != nil {
		return nil, err
	}
	f, err := toNumber("nth", args[1])
	if err != nil {
		return nil, err
	}
	i := int(f)
	if i < 0 || i >= len(list) {
		return nil, errors.New("nth: index out of range")
	}
	return list[i], nil
}
