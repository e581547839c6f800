package eval

import (
	"fmt"
	"strings"

	"src.tled.dev/pkg/tlisp/vals"
)

// Miscellaneous builtins.

func miscFns(ev *Evaler) map[string]func([]any) (any, error) {
	return map[string]func([]any) (any, error){
		"print": ev.print,
		"str":   str,
	}
}

// print writes the representations of its arguments, separated by spaces and
// followed by a newline, to the Evaler's configured output.
func (ev *Evaler) print(args []any) (any, error) {
	items := make([]string, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			items[i] = s
		} else {
			items[i] = vals.Repr(arg)
		}
	}
	_, err := fmt.Fprintln(ev.Output, strings.Join(items, " "))
	return nil, err
}

// str stringifies its arguments and concatenates them. Strings are used
// as-is; other values use their representation.
func str(args []any) (any, error) {
	var sb strings.Builder
	for _, arg := range args {
		if s, ok := arg.(string); ok {
			sb.WriteString(s)
		} else {
			sb.WriteString(vals.Repr(arg))
		}
	}
	return sb.String(), nil
}
