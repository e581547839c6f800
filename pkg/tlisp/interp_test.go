package tlisp

import (
	"testing"

	"src.tled.dev/pkg/tlisp/vals"
)

func TestExecute(t *testing.T) {
	in := New()
	got, err := in.Execute("[test]", "(+ 1 2) (* 3 4)")
	if err != nil {
		t.Fatalf("Execute -> error %v", err)
	}
	if got != 12.0 {
		t.Errorf("Execute -> %v, want 12 (value of the last form)", got)
	}
}

func TestExecute_ErrorDoesNotCorruptState(t *testing.T) {
	in := New()
	if _, err := in.Execute("[test]", "(defun f (x) (* x 2)) (boom)"); err == nil {
		t.Fatalf("Execute -> no error")
	}
	// Definitions made before the failure survive; new code still runs.
	got, err := in.Execute("[test]", "(f 21)")
	if err != nil {
		t.Fatalf("Execute after failure -> error %v", err)
	}
	if got != 42.0 {
		t.Errorf("Execute -> %v, want 42", got)
	}
}

func TestRegisterBuiltin(t *testing.T) {
	in := New()
	in.RegisterBuiltin("host-add", func(args []any) (any, error) {
		return args[0].(float64) + args[1].(float64), nil
	})
	got, err := in.Execute("[test]", "(host-add 2 3)")
	if err != nil {
		t.Fatalf("Execute -> error %v", err)
	}
	if got != 5.0 {
		t.Errorf("host-add -> %v, want 5", got)
	}
}

func TestPrelude(t *testing.T) {
	in := New()
	tests := []struct {
		src  string
		want any
	}{
		{"(when t 1)", 1.0},
		{"(when nil 1)", nil},
		{"(unless nil 42)", 42.0},
		{"(unless t 42)", nil},
		{"(map (lambda (x) (* x x)) '(1 2 3))", vals.List{1.0, 4.0, 9.0}},
		{"(filter (lambda (x) (< x 3)) '(1 2 3 4))", vals.List{1.0, 2.0}},
		{"(reduce + 0 '(1 2 3 4))", 10.0},
	}
	for _, test := range tests {
		got, err := in.Execute("[test]", test.src)
		if err != nil {
			t.Errorf("Execute(%q) -> error %v", test.src, err)
			continue
		}
		if !vals.Equal(got, test.want) {
			t.Errorf("Execute(%q) -> %s, want %s",
				test.src, vals.Repr(got), vals.Repr(test.want))
		}
	}
}
