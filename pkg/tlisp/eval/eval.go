// Package eval handles evaluation of parsed T-Lisp code and the state of the
// global environment.
package eval

import (
	"errors"
	"fmt"
	"io"
	"os"

	"src.tled.dev/pkg/logutil"
	"src.tled.dev/pkg/tlisp/parse"
	"src.tled.dev/pkg/tlisp/vals"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler provides a method for evaluating T-Lisp forms, and maintains the
// global environment.
type Evaler struct {
	global *Env

	// Output is where the print builtin writes. It is a field rather than a
	// process-wide setting so that embedders (and tests) can own it.
	Output io.Writer
}

// NewEvaler creates a new Evaler with all standard builtins registered in the
// global environment.
func NewEvaler() *Evaler {
	ev := &Evaler{global: NewEnv(nil), Output: os.Stdout}
	registerBuiltins(ev)
	return ev
}

// Global returns the global environment.
func (ev *Evaler) Global() *Env { return ev.global }

// RegisterBuiltin registers a native procedure under the given name in the
// global environment. It is the hook for host code to extend T-Lisp.
func (ev *Evaler) RegisterBuiltin(name string, impl func(args []any) (any, error)) {
	ev.global.Define(vals.Symbol(name), NewBuiltin(name, impl))
}

// EvalAll evaluates forms left-to-right in the global environment, returning
// the value of the last form. Evaluating no forms yields nil.
func (ev *Evaler) EvalAll(forms []any) (any, error) {
	var result any
	for _, form := range forms {
		var err error
		result, err = ev.Eval(form, ev.global)
		if err != nil {
			logger.Printf("eval error: %v", err)
			return nil, err
		}
	}
	return result, nil
}

// Eval evaluates a form in the given environment. All failures are returned
// as error values; Eval never panics on bad input.
//
// The loop structure implements tail-call elimination: a call in tail
// position updates form and env and continues the loop instead of recursing,
// so self-recursive T-Lisp loops run in constant Go stack space.
func (ev *Evaler) Eval(form any, env *Env) (any, error) {
	for {
		switch f := form.(type) {
		case nil, bool, float64, string:
			return f, nil
		case vals.Symbol:
			return env.Lookup(f)
		case vals.List:
			if len(f) == 0 {
				return nil, errors.New("cannot evaluate empty list")
			}
			head, args := f[0], f[1:]

			if sym, ok := head.(vals.Symbol); ok {
				switch sym {
				case parse.SymQuote:
					if len(args) != 1 {
						return nil, ArityError{Fn: "quote", Want: 1, Got: len(args)}
					}
					return args[0], nil
				case "if":
					next, err := ev.evalIf(args, env)
					if err != nil {
						return nil, err
					}
					form = next
					continue
				case "let":
					next, letEnv, err := ev.evalLet(args, env)
					if err != nil {
						return nil, err
					}
					form, env = next, letEnv
					continue
				case "lambda":
					return makeClosure("", args, env)
				case "defun":
					return ev.evalDefun(args, env, false)
				case "defmacro":
					return ev.evalDefun(args, env, true)
				case "set!":
					return ev.evalSet(args, env)
				case parse.SymQuasiquote:
					if len(args) != 1 {
						return nil, ArityError{Fn: "quasiquote", Want: 1, Got: len(args)}
					}
					return ev.evalQuasiquote(args[0], env)
				case parse.SymUnquote, parse.SymUnquoteSplicing:
					return nil, fmt.Errorf("%s outside quasiquote", sym)
				}

				// A head symbol bound to a macro: pass the argument forms
				// unevaluated to the transformer, then evaluate the resulting
				// form at the call site. Expansion is deliberately
				// non-hygienic; the expansion sees (and may capture) the
				// caller's bindings.
				if v, err := env.Lookup(sym); err == nil {
					if m, ok := v.(*Macro); ok {
						expanded, err := ev.expandMacro(m, args)
						if err != nil {
							return nil, err
						}
						form = expanded
						continue
					}
				}
			}

			fnv, err := ev.Eval(head, env)
			if err != nil {
				return nil, err
			}
			argv := make([]any, len(args))
			for i, arg := range args {
				argv[i], err = ev.Eval(arg, env)
				if err != nil {
					return nil, err
				}
			}

			switch fn := fnv.(type) {
			case *Builtin:
				return fn.Call(argv)
			case *Closure:
				callEnv, err := bindParams(fn, argv)
				if err != nil {
					return nil, err
				}
				// Evaluate all body forms but the last; the last occupies
				// tail position and reuses this loop.
				for _, bodyForm := range fn.body[:len(fn.body)-1] {
					if _, err := ev.Eval(bodyForm, callEnv); err != nil {
						return nil, err
					}
				}
				form, env = fn.body[len(fn.body)-1], callEnv
				continue
			default:
				return nil, TypeError{Fn: "apply", Want: "function", Got: fnv}
			}
		default:
			return nil, fmt.Errorf("cannot evaluate %s", vals.Kind(form))
		}
	}
}

// evalIf evaluates the test of an if form and returns the branch form to
// evaluate next. A missing else branch behaves as nil.
func (ev *Evaler) evalIf(args []any, env *Env) (any, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, fmt.Errorf("if: wants 2 or 3 arguments, got %d", len(args))
	}
	test, err := ev.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if vals.Bool(test) {
		return args[1], nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return nil, nil
}

// evalLet evaluates the binding values of a let form in the enclosing
// environment, binds them together into one new child frame, and returns the
// tail form of the body together with the child frame. The bindings are not
// threaded sequentially; none of them sees the others.
func (ev *Evaler) evalLet(args []any, env *Env) (any, *Env, error) {
	if len(args) < 2 {
		return nil, nil, fmt.Errorf("let: wants bindings and at least one body form")
	}
	bindings, ok := args[0].(vals.List)
	if !ok {
		return nil, nil, TypeError{Fn: "let", Want: "binding list", Got: args[0]}
	}
	letEnv := NewEnv(env)
	for _, b := range bindings {
		pair, ok := b.(vals.List)
		if !ok || len(pair) != 2 {
			return nil, nil, fmt.Errorf("let: each binding should be a (name value) pair")
		}
		name, ok := pair[0].(vals.Symbol)
		if !ok {
			return nil, nil, TypeError{Fn: "let", Want: "symbol", Got: pair[0]}
		}
		v, err := ev.Eval(pair[1], env)
		if err != nil {
			return nil, nil, err
		}
		letEnv.Define(name, v)
	}
	body := args[1:]
	for _, bodyForm := range body[:len(body)-1] {
		if _, err := ev.Eval(bodyForm, letEnv); err != nil {
			return nil, nil, err
		}
	}
	return body[len(body)-1], letEnv, nil
}

// evalDefun handles defun and defmacro: it defines a named closure (or macro
// transformer) in the current frame and returns the name symbol, not the
// function.
func (ev *Evaler) evalDefun(args []any, env *Env, macro bool) (any, error) {
	fn := "defun"
	if macro {
		fn = "defmacro"
	}
	if len(args) < 3 {
		return nil, fmt.Errorf("%s: wants a name, a parameter list and at least one body form", fn)
	}
	name, ok := args[0].(vals.Symbol)
	if !ok {
		return nil, TypeError{Fn: fn, Want: "symbol", Got: args[0]}
	}
	closure, err := makeClosure(string(name), args[1:], env)
	if err != nil {
		return nil, err
	}
	if macro {
		env.Define(name, &Macro{closure})
	} else {
		env.Define(name, closure)
	}
	return name, nil
}

func (ev *Evaler) evalSet(args []any, env *Env) (any, error) {
	if len(args) != 2 {
		return nil, ArityError{Fn: "set!", Want: 2, Got: len(args)}
	}
	name, ok := args[0].(vals.Symbol)
	if !ok {
		return nil, TypeError{Fn: "set!", Want: "symbol", Got: args[0]}
	}
	v, err := ev.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(name, v); err != nil {
		return nil, err
	}
	return v, nil
}

// evalQuasiquote constructs a value from a quasiquote template: unquoted
// sub-forms are evaluated, spliced sub-forms must evaluate to a list and are
// flattened into the surrounding list, and everything else is literal.
func (ev *Evaler) evalQuasiquote(form any, env *Env) (any, error) {
	list, ok := form.(vals.List)
	if !ok {
		return form, nil
	}
	if sym, rest, ok := headSymbol(list); ok {
		switch sym {
		case parse.SymUnquote:
			if len(rest) != 1 {
				return nil, ArityError{Fn: "unquote", Want: 1, Got: len(rest)}
			}
			return ev.Eval(rest[0], env)
		case parse.SymUnquoteSplicing:
			return nil, fmt.Errorf("unquote-splicing outside list context")
		}
	}
	out := vals.List{}
	for _, elem := range list {
		if el, ok := elem.(vals.List); ok {
			if sym, rest, ok := headSymbol(el); ok && sym == parse.SymUnquoteSplicing {
				if len(rest) != 1 {
					return nil, ArityError{Fn: "unquote-splicing", Want: 1, Got: len(rest)}
				}
				v, err := ev.Eval(rest[0], env)
				if err != nil {
					return nil, err
				}
				spliced, ok := v.(vals.List)
				if !ok {
					return nil, TypeError{Fn: "unquote-splicing", Want: "list", Got: v}
				}
				out = append(out, spliced...)
				continue
			}
		}
		v, err := ev.evalQuasiquote(elem, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// expandMacro runs a macro transformer on unevaluated argument forms and
// returns the expansion.
func (ev *Evaler) expandMacro(m *Macro, args []any) (any, error) {
	callEnv, err := bindParams(m.transformer, args)
	if err != nil {
		return nil, err
	}
	var expanded any
	for _, bodyForm := range m.transformer.body {
		expanded, err = ev.Eval(bodyForm, callEnv)
		if err != nil {
			return nil, err
		}
	}
	return expanded, nil
}

// makeClosure builds a closure from (params body...) forms, capturing the
// defining environment.
func makeClosure(name string, args []any, env *Env) (*Closure, error) {
	fn := name
	if fn == "" {
		fn = "lambda"
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: wants a parameter list and at least one body form", fn)
	}
	paramList, ok := args[0].(vals.List)
	if !ok {
		return nil, TypeError{Fn: fn, Want: "parameter list", Got: args[0]}
	}
	params := make([]vals.Symbol, len(paramList))
	for i, p := range paramList {
		sym, ok := p.(vals.Symbol)
		if !ok {
			return nil, TypeError{Fn: fn, Want: "symbol", Got: p}
		}
		params[i] = sym
	}
	return &Closure{name: name, params: params, body: args[1:], env: env}, nil
}

// bindParams creates the call frame for a closure, binding parameters to
// argument values. An arity mismatch fails; arguments are never truncated or
// padded.
func bindParams(c *Closure, args []any) (*Env, error) {
	if len(args) != len(c.params) {
		return nil, ArityError{Fn: c.fnName(), Want: len(c.params), Got: len(args)}
	}
	callEnv := NewEnv(c.env)
	for i, p := range c.params {
		callEnv.Define(p, args[i])
	}
	return callEnv, nil
}

func headSymbol(list vals.List) (vals.Symbol, []any, bool) {
	if len(list) == 0 {
		return "", nil, false
	}
	sym, ok := list[0].(vals.Symbol)
	if !ok {
		return "", nil, false
	}
	return sym, list[1:], true
}
