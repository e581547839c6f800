package eval

import (
	"errors"
	"strings"
	"testing"

	"src.tled.dev/pkg/tlisp/parse"
	"src.tled.dev/pkg/tlisp/vals"
	"src.tled.dev/pkg/tt"
)

func evalStr(ev *Evaler, src string) (any, error) {
	forms, err := parse.Parse("[test]", src)
	if err != nil {
		return nil, err
	}
	return ev.EvalAll(forms)
}

func mustEval(t *testing.T, ev *Evaler, src string) any {
	t.Helper()
	v, err := evalStr(ev, src)
	if err != nil {
		t.Fatalf("eval %q -> error %v", src, err)
	}
	return v
}

var evalTests = []struct {
	src  string
	want any
}{
	// Self-evaluating atoms.
	{"42", 42.0},
	{`"hi"`, "hi"},
	{"t", true},
	{"nil", nil},

	// Arithmetic and comparison.
	{"(+ 1 2 3)", 6.0},
	{"(- 10 4)", 6.0},
	{"(- 5)", -5.0},
	{"(* 2 3 4)", 24.0},
	{"(/ 10 4)", 2.5},
	{"(< 1 2 3)", true},
	{"(< 1 3 2)", false},
	{"(= 2 2)", true},

	// Special forms.
	{"(quote x)", vals.Symbol("x")},
	{"'(1 2)", vals.List{1.0, 2.0}},
	{"(if t 1 2)", 1.0},
	{"(if nil 1 2)", 2.0},
	{"(if nil 1)", nil},
	{"(let ((a 1) (b 2)) (+ a b))", 3.0},
	{"((lambda (x) (* x x)) 7)", 49.0},
	{"(defun id (x) x)", vals.Symbol("id")},

	// defun defines; the definition is then callable.
	{"(defun sq (x) (* x x)) (sq 9)", 81.0},

	// set! vs define: set! mutates the owning frame.
	{"(defun f () 1) (let ((n 1)) (set! n 2) n)", 2.0},

	// Lists.
	{"(car '(1 2 3))", 1.0},
	{"(cdr '(1 2 3))", vals.List{2.0, 3.0}},
	{"(cons 1 '(2 3))", vals.List{1.0, 2.0, 3.0}},
	{"(length '(1 2 3))", 3.0},
	{"(append '(1) '(2 3))", vals.List{1.0, 2.0, 3.0}},
	{"(nth '(1 2 3) 1)", 2.0},

	// Predicates.
	{"(null? nil)", true},
	{"(null? 1)", false},
	{"(number? 1)", true},
	{"(string? \"s\")", true},
	{"(symbol? 'a)", true},
	{"(list? '(1))", true},
	{"(eq? '(1 2) '(1 2))", true},
	{"(not nil)", true},

	// Strings.
	{`(concat "a" "b")`, "ab"},
	{`(substring "hello" 1 3)`, "el"},
	{`(string-length "hello")`, 5.0},
	{`(string->number "4.5")`, 4.5},
	{`(string->number "x")`, nil},
	{`(number->string 4)`, "4"},
	{`(string=? "a" "a")`, true},

	// Quasiquote.
	{"`(1 2)", vals.List{1.0, 2.0}},
	{"(let ((x 5)) `(a ,x))", vals.List{vals.Symbol("a"), 5.0}},
	{"(let ((xs '(2 3))) `(1 ,@xs 4))", vals.List{1.0, 2.0, 3.0, 4.0}},

	// Multiple top-level forms: value of the last.
	{"1 2 3", 3.0},
}

func TestEval(t *testing.T) {
	for _, test := range evalTests {
		ev := NewEvaler()
		got, err := evalStr(ev, test.src)
		if err != nil {
			t.Errorf("eval %q -> error %v", test.src, err)
			continue
		}
		if !vals.Equal(got, test.want) {
			t.Errorf("eval %q -> %s, want %s",
				test.src, vals.Repr(got), vals.Repr(test.want))
		}
	}
}

var evalErrorTests = []struct {
	src     string
	wantErr any
}{
	{"x", UnboundVariableError{"x"}},
	{"(set! missing 1)", UnboundVariableError{"missing"}},
	{"()", "cannot evaluate empty list"},
	{"(+ 1 \"a\")", TypeError{}},
	{"(< 1 'a)", TypeError{}},
	{"(car '())", "car: empty list"},
	{"(cdr '())", "cdr: empty list"},
	{"(car 1)", TypeError{}},
	{"(hashmap \"a\")", "even number"},
	{"(hashmap-get 1 \"k\")", TypeError{}},
	{"((lambda (a b) a) 1)", ArityError{}},
	{"((lambda (a b) a) 1 2 3)", ArityError{}},
	{"(1 2)", TypeError{}},
	{",x", "unquote outside quasiquote"},
	{"`,@x", "unquote-splicing outside list context"},
	{"`(a ,@1)", TypeError{}},
}

func TestEval_Errors(t *testing.T) {
	for _, test := range evalErrorTests {
		ev := NewEvaler()
		_, err := evalStr(ev, test.src)
		if err == nil {
			t.Errorf("eval %q -> no error", test.src)
			continue
		}
		switch want := test.wantErr.(type) {
		case string:
			if !strings.Contains(err.Error(), want) {
				t.Errorf("eval %q -> error %q, want one containing %q",
					test.src, err, want)
			}
		case UnboundVariableError:
			var unbound UnboundVariableError
			if !errors.As(err, &unbound) || unbound.Name != want.Name {
				t.Errorf("eval %q -> error %v, want UnboundVariableError{%s}",
					test.src, err, want.Name)
			}
		case ArityError:
			var arity ArityError
			if !errors.As(err, &arity) {
				t.Errorf("eval %q -> error %v, want ArityError", test.src, err)
			}
		case TypeError:
			var typeErr TypeError
			if !errors.As(err, &typeErr) {
				t.Errorf("eval %q -> error %v, want TypeError", test.src, err)
			}
		}
	}
}

func TestEval_ArityErrorCounts(t *testing.T) {
	ev := NewEvaler()
	_, err := evalStr(ev, "((lambda (a b) a) 1)")
	var arity ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("got error %v, want ArityError", err)
	}
	if arity.Want != 2 || arity.Got != 1 {
		t.Errorf("ArityError = want %d got %d, want 2/1", arity.Want, arity.Got)
	}
}

func TestEval_ClosureCapture(t *testing.T) {
	ev := NewEvaler()
	mustEval(t, ev, `
		(defun make-adder (n) (lambda (x) (+ x n)))
		(defun add2 (x) ((make-adder 2) x))`)
	got := mustEval(t, ev, "(add2 40)")
	if got != 42.0 {
		t.Errorf("add2 40 = %v, want 42", got)
	}
}

func TestEval_LetBindingsNotSequential(t *testing.T) {
	ev := NewEvaler()
	// The b binding must not see a from the same let.
	_, err := evalStr(ev, "(let ((a 1) (b a)) b)")
	var unbound UnboundVariableError
	if !errors.As(err, &unbound) || unbound.Name != "a" {
		t.Errorf("got error %v, want UnboundVariableError{a}", err)
	}
}

func TestEval_LetShadowing(t *testing.T) {
	ev := NewEvaler()
	got := mustEval(t, ev, `
		(defun go ()
			(let ((n 1))
				(let ((n 2)) n)))
		(go)`)
	if got != 2.0 {
		t.Errorf("inner let = %v, want 2", got)
	}
}

func TestEval_Macro(t *testing.T) {
	ev := NewEvaler()
	mustEval(t, ev, "(defmacro unless (c b) `(if ,c nil ,b))")
	if got := mustEval(t, ev, "(unless nil 42)"); got != 42.0 {
		t.Errorf("(unless nil 42) = %v, want 42", got)
	}
	if got := mustEval(t, ev, "(unless t 42)"); got != nil {
		t.Errorf("(unless t 42) = %v, want nil", got)
	}
}

func TestEval_MacroArgsNotPreEvaluated(t *testing.T) {
	ev := NewEvaler()
	// The argument form is an unbound symbol; a function call would fail,
	// but a macro receives the form unevaluated.
	mustEval(t, ev, "(defmacro quoting (x) `(quote ,x))")
	got := mustEval(t, ev, "(quoting undefined-name)")
	if got != vals.Symbol("undefined-name") {
		t.Errorf("(quoting undefined-name) = %v, want the symbol", got)
	}
}

func TestEval_MacroCapturePreserved(t *testing.T) {
	ev := NewEvaler()
	// Non-hygienic expansion: the expansion's reference to "it" captures the
	// caller's binding. This behavior is intentional.
	mustEval(t, ev, "(defmacro get-it () 'it)")
	got := mustEval(t, ev, "(let ((it 7)) (get-it))")
	if got != 7.0 {
		t.Errorf("(get-it) = %v, want 7 from captured binding", got)
	}
}

func TestEval_TailCallElimination(t *testing.T) {
	ev := NewEvaler()
	mustEval(t, ev, `
		(defun countdown (n)
			(if (= n 0) "done" (countdown (- n 1))))`)
	got := mustEval(t, ev, "(countdown 10000)")
	if got != "done" {
		t.Errorf("countdown = %v, want done", got)
	}
}

func TestEval_TailCallThroughLetAndIf(t *testing.T) {
	ev := NewEvaler()
	mustEval(t, ev, `
		(defun spin (n)
			(let ((m (- n 1)))
				(if (<= n 0) m (spin m))))`)
	got := mustEval(t, ev, "(spin 20000)")
	if got != -1.0 {
		t.Errorf("spin = %v, want -1", got)
	}
}

func TestEval_HashmapPersistence(t *testing.T) {
	ev := NewEvaler()
	got := mustEval(t, ev, `
		(let ((m1 (hashmap "a" 1)))
			(let ((m2 (hashmap-set m1 "k" 2)))
				(list (hashmap-size m1)
				      (hashmap-has-key? m1 "k")
				      (hashmap-size m2)
				      (hashmap-get m2 "k")
				      (hashmap-get m1 "missing"))))`)
	want := vals.List{1.0, false, 2.0, 2.0, nil}
	if !vals.Equal(got, want) {
		t.Errorf("persistence probe = %s, want %s",
			vals.Repr(got), vals.Repr(want))
	}
}

func TestEval_Print(t *testing.T) {
	ev := NewEvaler()
	var sb strings.Builder
	ev.Output = &sb
	mustEval(t, ev, `(print "hello" 42)`)
	if got := sb.String(); got != "hello 42\n" {
		t.Errorf("print wrote %q, want %q", got, "hello 42\n")
	}
}

func TestEnv(t *testing.T) {
	parent := NewEnv(nil)
	child := NewEnv(parent)
	parent.Define("a", 1.0)
	child.Define("a", 2.0)

	tt.Test(t, tt.Fn("Lookup", func(e *Env, name string) any {
		v, err := e.Lookup(vals.Symbol(name))
		if err != nil {
			return err.Error()
		}
		return v
	}), tt.Table{
		tt.Args(child, "a").Rets(2.0),
		tt.Args(parent, "a").Rets(1.0),
		tt.Args(child, "b").Rets("unbound variable: b"),
	})

	// Set mutates the owning frame, not the local one.
	parent.Define("x", 1.0)
	if err := child.Set("x", 3.0); err != nil {
		t.Fatalf("Set -> error %v", err)
	}
	if v, _ := parent.Lookup("x"); v != 3.0 {
		t.Errorf("parent x = %v after Set on child, want 3", v)
	}
	if err := child.Set("y", 1.0); err == nil {
		t.Errorf("Set on unbound name -> no error")
	}
}
