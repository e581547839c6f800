package vals

import (
	"fmt"
	"strconv"
	"strings"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the value. The string is
	// preferably a T-Lisp literal that evaluates to the value; otherwise it
	// is a string enclosed in "#<>" containing the kind and identity of the
	// value, like "#<function 0xdeadcafe>".
	Repr() string
}

// Repr returns the representation of a value, a string that is preferably
// (but not necessarily) a T-Lisp expression that evaluates to the argument.
// It is implemented for the builtin types nil, bool, float64 and string, the
// Symbol, List and Map types, and types satisfying the Reprer interface. For
// other types, it uses fmt.Sprint with the format "#<unknown %v>".
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "t"
		}
		return "nil"
	case float64:
		return FormatNumber(v)
	case string:
		return QuoteString(v)
	case Symbol:
		return string(v)
	case List:
		items := make([]string, len(v))
		for i, elem := range v {
			items[i] = Repr(elem)
		}
		return "(" + strings.Join(items, " ") + ")"
	case Map:
		var sb strings.Builder
		sb.WriteString("(hashmap")
		for it := v.Iterator(); it.HasElem(); it.Next() {
			k, mv := it.Elem()
			sb.WriteString(" " + QuoteString(k) + " " + Repr(mv))
		}
		sb.WriteString(")")
		return sb.String()
	case Reprer:
		return v.Repr()
	default:
		return fmt.Sprintf("#<unknown %v>", v)
	}
}

// FormatNumber formats a number the way the printer shows it: integral
// values print without a fractional part.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// QuoteString quotes a string as a T-Lisp string literal, escaping the
// characters that the tokenizer recognizes escapes for.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
