// Package tt runs table-driven tests with minimal boilerplate.
//
// A table is a slice of cases, each built with Args and an expectation
// attached with Rets:
//
//	tt.Test(t, tt.Fn("Add", Add), tt.Table{
//		tt.Args(1, 2).Rets(3),
//	})
package tt

import (
	"fmt"
	"reflect"
	"strings"
)

// Table is a list of test cases.
type Table []*Case

// Case is one test case: the arguments to call with and the expected
// returns.
type Case struct {
	args []any
	want [][]any
}

// Args starts a Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets adds an expectation on the return values and returns the case, so
// calls chain as Args(...).Rets(...). An expected value that implements
// [Matcher] is consulted with Match; any other value is compared with
// reflect.DeepEqual.
func (c *Case) Rets(want ...any) *Case {
	c.want = append(c.want, want)
	return c
}

// NamedFn is a function under test together with the name used in failure
// messages.
type NamedFn struct {
	name string
	body any
}

// Fn names the function under test.
func Fn(name string, body any) NamedFn {
	return NamedFn{name, body}
}

// T is the subset of testing.T that Test needs.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn.Body with each case's arguments and reports mismatches
// through t.
func Test(t T, fn NamedFn, table Table) {
	t.Helper()
	for _, c := range table {
		got := call(fn.body, c.args)
		for _, want := range c.want {
			if matches(want, got) {
				continue
			}
			t.Errorf("%s(%s) -> %s, want %s",
				fn.name, commaList(c.args), retList(got), retList(want))
		}
	}
}

// Matcher is implemented by expected values that need more than deep
// equality.
type Matcher interface {
	Match(got any) bool
}

// Any matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool { return true }

func matches(want, got []any) bool {
	for i, w := range want {
		if m, ok := w.(Matcher); ok {
			if !m.Match(got[i]) {
				return false
			}
		} else if !reflect.DeepEqual(w, got[i]) {
			return false
		}
	}
	return true
}

func retList(vs []any) string {
	if len(vs) == 1 {
		return fmt.Sprint(vs[0])
	}
	return "(" + commaList(vs) + ")"
}

func commaList(vs []any) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	return sb.String()
}

func call(body any, args []any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// A plain reflect.ValueOf(nil) is invalid; go through a pointer
			// to get a typed nil interface value.
			var v any
			in[i] = reflect.ValueOf(&v).Elem()
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	out := reflect.ValueOf(body).Call(in)
	rets := make([]any, len(out))
	for i, v := range out {
		rets[i] = v.Interface()
	}
	return rets
}
