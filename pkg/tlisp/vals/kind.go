package vals

import "fmt"

// Kinder wraps the Kind method.
type Kinder interface {
	Kind() string
}

// Kind returns the "kind" of the value, the name of its variant in the value
// model. It is implemented for the builtin nil, bool, float64 and string, the
// Symbol, List and Map types, and types satisfying the Kinder interface. For
// other types, it returns the Go type name of the argument preceded by "!!".
func Kind(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Symbol:
		return "symbol"
	case List:
		return "list"
	case Map:
		return "hashmap"
	case Kinder:
		return v.Kind()
	default:
		return fmt.Sprintf("!!%T", v)
	}
}
