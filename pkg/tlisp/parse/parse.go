package parse

import (
	"fmt"
	"strconv"

	"src.tled.dev/pkg/diag"
	"src.tled.dev/pkg/tlisp/vals"
)

// Error is a parse error, like an unbalanced parenthesis or a dangling
// reader macro.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

// ErrorTag identifies parse errors.
func (ErrorTag) ErrorTag() string { return "parse error" }

// Names of the special forms that reader macros expand to.
const (
	SymQuote           = vals.Symbol("quote")
	SymQuasiquote      = vals.Symbol("quasiquote")
	SymUnquote         = vals.Symbol("unquote")
	SymUnquoteSplicing = vals.Symbol("unquote-splicing")
)

// parser maintains the mutable state of parsing a token stream.
type parser struct {
	srcName string
	src     string
	tokens  []Token
	pos     int
}

// Parse parses T-Lisp source code into the ordered sequence of its top-level
// forms. A single source may contain any number of top-level forms;
// evaluating the result runs every form left-to-right.
//
// The returned error, if not nil, contains one or more [SyntaxError] or
// [Error] values; they can be recovered with [diag.UnpackErrors].
func Parse(srcName, src string) ([]any, error) {
	tokens, err := Tokenize(srcName, src)
	if err != nil {
		return nil, err
	}
	ps := &parser{srcName: srcName, src: src, tokens: tokens}
	var forms []any
	for !ps.atEOF() {
		form, err := ps.form()
		if err != nil {
			return forms, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func (ps *parser) form() (any, error) {
	token := ps.next()
	switch token.Kind {
	case LParen:
		return ps.list(token)
	case RParen:
		return nil, ps.errorp(token, fmt.Errorf("unexpected %q", ")"), false)
	case Quote:
		return ps.readerMacro(token, SymQuote)
	case Quasiquote:
		return ps.readerMacro(token, SymQuasiquote)
	case Unquote:
		return ps.readerMacro(token, SymUnquote)
	case UnquoteSplicing:
		return ps.readerMacro(token, SymUnquoteSplicing)
	case Str:
		return token.Val, nil
	case Atom:
		return parseAtom(token.Text), nil
	default:
		panic(fmt.Sprintf("unhandled token kind %v", token.Kind))
	}
}

// list parses the remainder of a list form; the opening parenthesis has
// already been consumed.
func (ps *parser) list(open Token) (any, error) {
	elems := vals.List{}
	for {
		if ps.atEOF() {
			return nil, ps.errorp(open,
				fmt.Errorf("unterminated list"), true)
		}
		if ps.peek().Kind == RParen {
			ps.next()
			return elems, nil
		}
		elem, err := ps.form()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

// readerMacro parses the form after a reader macro marker and wraps it, so
// that 'x becomes (quote x), `x becomes (quasiquote x), and so on.
func (ps *parser) readerMacro(marker Token, sym vals.Symbol) (any, error) {
	if ps.atEOF() {
		return nil, ps.errorp(marker,
			fmt.Errorf("%q is not followed by a form", marker.Text), true)
	}
	form, err := ps.form()
	if err != nil {
		return nil, err
	}
	return vals.List{sym, form}, nil
}

// parseAtom converts an atom token to its value: a number, one of the t/nil
// booleans, or a symbol.
func parseAtom(text string) any {
	switch text {
	case "t":
		return true
	case "nil":
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return vals.Symbol(text)
}

// UnpackErrors returns the constituent parse errors if the given error
// contains one or more parse errors. Otherwise it returns nil.
func UnpackErrors(e error) []*Error {
	return diag.UnpackErrors[ErrorTag](e)
}

// UnpackSyntaxErrors returns the constituent syntax errors if the given error
// contains one or more syntax errors. Otherwise it returns nil.
func UnpackSyntaxErrors(e error) []*SyntaxError {
	return diag.UnpackErrors[SyntaxErrorTag](e)
}

func (ps *parser) atEOF() bool { return ps.pos == len(ps.tokens) }

func (ps *parser) peek() Token { return ps.tokens[ps.pos] }

func (ps *parser) next() Token {
	token := ps.tokens[ps.pos]
	ps.pos++
	return token
}

func (ps *parser) errorp(r diag.Ranger, e error, partial bool) error {
	return &Error{
		Message: e.Error(),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
		Partial: partial,
	}
}
