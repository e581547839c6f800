package vals

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the sender to another value. Implementations should be
	// reflexive, symmetric and transitive.
	Equal(other any) bool
}

// Equal returns whether two values are structurally equal. Values of
// different kinds are never equal.
func Equal(x, y any) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool:
		return x == y
	case float64:
		return x == y
	case string:
		return x == y
	case Symbol:
		return x == y
	case List:
		return equalList(x, y)
	case Map:
		return equalMap(x, y)
	case Equaler:
		return x.Equal(y)
	default:
		return x == y
	}
}

func equalList(x List, y any) bool {
	yy, ok := y.(List)
	if !ok || len(x) != len(yy) {
		return false
	}
	for i, elem := range x {
		if !Equal(elem, yy[i]) {
			return false
		}
	}
	return true
}

func equalMap(x Map, y any) bool {
	yy, ok := y.(Map)
	if !ok || x.Len() != yy.Len() {
		return false
	}
	for it := x.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		v2, ok := yy.Index(k)
		if !ok || !Equal(v, v2) {
			return false
		}
	}
	return true
}
