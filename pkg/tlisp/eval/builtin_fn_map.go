package eval

import (
	"errors"

	"src.tled.dev/pkg/tlisp/vals"
)

// Hashmap builtins. The underlying map is persistent: every "mutator"
// returns a new map and never alters the size or keys of its argument.

func mapFns() map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"hashmap":          hashmapFn,
		"hashmap-get":      hashmapGet,
		"hashmap-set":      hashmapSet,
		"hashmap-remove":   hashmapRemove,
		"hashmap-keys":     hashmapKeys,
		"hashmap-values":   hashmapValues,
		"hashmap-has-key?": hashmapHasKey,
		"hashmap-size":     hashmapSize,
	}
}

func toMap(fn string, v any) (vals.Map, error) {
	m, ok := v.(vals.Map)
	if !ok {
		return vals.EmptyMap, TypeError{Fn: fn, Want: "hashmap", Got: v}
	}
	return m, nil
}

func toKeyString(fn string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", TypeError{Fn: fn, Want: "string key", Got: v}
	}
	return s, nil
}

func hashmapFn(args []any) (any, error) {
	if len(args)%2 != 0 {
		return nil, errors.New("hashmap: wants an even number of arguments")
	}
	m := vals.EmptyMap
	for i := 0; i < len(args); i += 2 {
		k, err := toKeyString("hashmap", args[i])
		if err != nil {
			return nil, err
		}
		m = m.Assoc(k, args[i+1])
	}
	return m, nil
}

func hashmapGet(args []any) (any, error) {
	if err := checkArity("hashmap-get", args, 2); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-get", args[0])
	if err != nil {
		return nil, err
	}
	k, err := toKeyString("hashmap-get", args[1])
	if err != nil {
		return nil, err
	}
	// A missing key yields nil, not an error.
	v, _ := m.Index(k)
	return v, nil
}

func hashmapSet(args []any) (any, error) {
	if err := checkArity("hashmap-set", args, 3); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-set", args[0])
	if err != nil {
		return nil, err
	}
	k, err := toKeyString("hashmap-set", args[1])
	if err != nil {
		return nil, err
	}
	return m.Assoc(k, args[2]), nil
}

func hashmapRemove(args []any) (any, error) {
	if err := checkArity("hashmap-remove", args, 2); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-remove", args[0])
	if err != nil {
		return nil, err
	}
	k, err := toKeyString("hashmap-remove", args[1])
	if err != nil {
		return nil, err
	}
	return m.Dissoc(k), nil
}

func hashmapKeys(args []any) (any, error) {
	if err := checkArity("hashmap-keys", args, 1); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-keys", args[0])
	if err != nil {
		return nil, err
	}
	out := vals.List{}
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		out = append(out, k)
	}
	return out, nil
}

func hashmapValues(args []any) (any, error) {
	if err := checkArity("hashmap-values", args, 1); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-values", args[0])
	if err != nil {
		return nil, err
	}
	out := vals.List{}
	for it := m.Iterator(); it.HasElem(); it.Next() {
		_, v := it.Elem()
		out = append(out, v)
	}
	return out, nil
}

func hashmapHasKey(args []any) (any, error) {
	if err := checkArity("hashmap-has-key?", args, 2); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-has-key?", args[0])
	if err != nil {
		return nil, err
	}
	k, err := toKeyString("hashmap-has-key?", args[1])
	if err != nil {
		return nil, err
	}
	return m.HasKey(k), nil
}

func hashmapSize(args []any) (any, error) {
	if err := checkArity("hashmap-size", args, 1); err != nil {
		return nil, err
	}
	m, err := toMap("hashmap-size", args[0])
	if err != nil {
		return nil, err
	}
	return float64(m.Len()), nil
}
