package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents an error with a source context. The type parameter
// determines the value of the error tag, which identifies the category of
// the error (like "syntax error" or "parse error").
type Error[T ErrorTag] struct {
	Message string
	Context Context

	// Indicates whether the error may be caused by incomplete input. The
	// parser sets this for errors at the very end of the source, which lets
	// interactive frontends prompt for more input instead of aborting.
	Partial bool
}

// ErrorTag is used to parameterize [Error] into different concrete types. The
// ErrorTag method is called on a zero value of the implementing type.
type ErrorTag interface {
	ErrorTag() string
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	var tag T
	return fmt.Sprintf("%s: %d-%d in %s: %s",
		tag.ErrorTag(), e.Context.From, e.Context.To, e.Context.Name, e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error with the source context underlined.
func (e *Error[T]) Show(indent string) string {
	var tag T
	header := fmt.Sprintf("%s: \033[31;1m%s\033[m\n",
		title(tag.ErrorTag()), e.Message)
	return header + e.Context.ShowCompact(indent+"  ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PackErrors packs a slice of errors into one error. If the slice is empty,
// it returns nil. If the slice has one error, it returns that error itself.
// Otherwise it returns an error that wraps all of them.
func PackErrors[T ErrorTag](errs []*Error[T]) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &multiError[T]{errs}
	}
}

// UnpackErrors returns the constituent [Error] instances in an error if it is
// built from [PackErrors]. Otherwise it returns nil.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	switch err := err.(type) {
	case *Error[T]:
		return []*Error[T]{err}
	case *multiError[T]:
		return err.errs
	default:
		return nil
	}
}

type multiError[T ErrorTag] struct {
	errs []*Error[T]
}

func (me *multiError[T]) Error() string {
	var sb strings.Builder
	var tag T
	fmt.Fprintf(&sb, "multiple %ss: ", tag.ErrorTag())
	for i, e := range me.errs {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Is supports errors.Is on the constituent errors.
func (me *multiError[T]) Is(target error) bool {
	for _, e := range me.errs {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}
