package vals

// Bool returns the truthiness of a value. Only nil and false are false;
// everything else, including 0, "" and the empty list, is true.
func Bool(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}
