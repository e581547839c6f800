package eval

import (
	"errors"
	"strconv"
	"strings"

	"src.tled.dev/pkg/tlisp/vals"
)

// String builtins.

func strFns() map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"concat":         concat,
		"substring":      substring,
		"string-length":  stringLength,
		"string-split":   stringSplit,
		"string->number": stringToNumber,
		"number->string": numberToString,
		"string=?":       stringEq,
	}
}

func toString(fn string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", TypeError{Fn: fn, Want: "string", Got: v}
	}
	return s, nil
}

func concat(args []any) (any, error) {
	var sb strings.Builder
	for _, arg := range args {
		s, err := toString("concat", arg)
		if err != nil {
			return nil, err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func substring(args []any) (any, error) {
	if err := checkArity("substring", args, 3); err != nil {
		return nil, err
	}
	s, err := toString("substring", args[0])
	if err != nil {
		return nil, err
	}
	fromF, err := toNumber("substring", args[1])
	if err != nil {
		return nil, err
	}
	toF, err := toNumber("substring", args[2])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	from, to := int(fromF), int(toF)
	if from < 0 || to > len(runes) || from > to {
		return nil, errors.New("substring: index out of range")
	}
	return string(runes[from:to]), nil
}

func stringLength(args []any) (any, error) {
	if err := checkArity("string-length", args, 1); err != nil {
		return nil, err
	}
	s, err := toString("string-length", args[0])
	if err != nil {
		return nil, err
	}
	return float64(len([]rune(s))), nil
}

func stringSplit(args []any) (any, error) {
	if err := checkArity("string-split", args, 2); err != nil {
		return nil, err
	}
	s, err := toString("string-split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := toString("string-split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make(vals.List, len(parts))
	for i, part := range parts {
		out[i] = part
	}
	return out, nil
}

func stringToNumber(args []any) (any, error) {
	if err := checkArity("string->number", args, 1); err != nil {
		return nil, err
	}
	s, err := toString("string->number", args[0])
	if err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unparseable input yields nil rather than an error, so scripts can
		// probe with it.
		return nil, nil
	}
	return f, nil
}

func numberToString(args []any) (any, error) {
	if err := checkArity("number->string", args, 1); err != nil {
		return nil, err
	}
	f, err := toNumber("number->string", args[0])
	if err != nil {
		return nil, err
	}
	return vals.FormatNumber(f), nil
}

func stringEq(args []any) (any, error) {
	if err := checkArity("string=?", args, 2); err != nil {
		return nil, err
	}
	a, err := toString("string=?", args[0])
	if err != nil {
		return nil, err
	}
	b, err := toString("string=?", args[1])
	if err != nil {
		return nil, err
	}
	return a == b, nil
}
