// Package parse implements tokenizing and parsing of T-Lisp source code into
// value trees.
package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.tled.dev/pkg/diag"
)

// SyntaxError is a tokenization error, like an unterminated string literal or
// an invalid escape sequence.
type SyntaxError = diag.Error[SyntaxErrorTag]

// SyntaxErrorTag parameterizes [diag.Error] to define [SyntaxError].
type SyntaxErrorTag struct{}

// ErrorTag identifies syntax errors.
func (SyntaxErrorTag) ErrorTag() string { return "syntax error" }

// TokenKind enumerates the kinds of tokens.
type TokenKind int

// Possible values for TokenKind.
const (
	LParen TokenKind = iota
	RParen
	Atom
	Str
	Quote
	Quasiquote
	Unquote
	UnquoteSplicing
)

// Token is a single lexical unit of T-Lisp source code.
type Token struct {
	Kind TokenKind
	// Text is the raw source text of the token.
	Text string
	// Val is the decoded string value. It is only set for Str tokens.
	Val string
	diag.Ranging
}

// Runes that terminate an atom.
const atomTerminators = "()'`,;\""

// tokenizer holds the mutable state of tokenization.
//
// NOTE: The src member is assumed to be valid UTF-8.
type tokenizer struct {
	srcName string
	src     string
	pos     int
	tokens  []Token
	errors  []*SyntaxError
}

// Tokenize converts T-Lisp source code into an ordered token sequence. If the
// source contains lexical errors, it returns the tokens lexed so far along
// with a non-nil error; no input characters are ever silently dropped.
func Tokenize(srcName, src string) ([]Token, error) {
	tk := &tokenizer{srcName: srcName, src: src}
	tk.run()
	return tk.tokens, diag.PackErrors(tk.errors)
}

func (tk *tokenizer) run() {
	for {
		tk.skipSpacesAndComments()
		if tk.pos == len(tk.src) {
			return
		}
		begin := tk.pos
		r := tk.next()
		switch r {
		case '(':
			tk.add(LParen, begin, "")
		case ')':
			tk.add(RParen, begin, "")
		case '\'':
			tk.add(Quote, begin, "")
		case '`':
			tk.add(Quasiquote, begin, "")
		case ',':
			if tk.peek() == '@' {
				tk.next()
				tk.add(UnquoteSplicing, begin, "")
			} else {
				tk.add(Unquote, begin, "")
			}
		case '"':
			tk.lexString(begin)
		default:
			tk.lexAtom(begin)
		}
	}
}

func (tk *tokenizer) lexString(begin int) {
	var sb strings.Builder
	for {
		if tk.pos == len(tk.src) {
			tk.errorp(diag.Ranging{From: begin, To: tk.pos},
				fmt.Errorf("unterminated string literal"), true)
			return
		}
		r := tk.next()
		switch r {
		case '"':
			tk.add(Str, begin, sb.String())
			return
		case '\\':
			escBegin := tk.pos - 1
			if tk.pos == len(tk.src) {
				tk.errorp(diag.Ranging{From: escBegin, To: tk.pos},
					fmt.Errorf("unterminated string literal"), true)
				return
			}
			e := tk.next()
			switch e {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				tk.errorp(diag.Ranging{From: escBegin, To: tk.pos},
					fmt.Errorf("invalid escape sequence \\%c", e), false)
				// Keep lexing the rest of the string so that further errors
				// are reported too.
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (tk *tokenizer) lexAtom(begin int) {
	for tk.pos < len(tk.src) {
		r := tk.peek()
		if unicode.IsSpace(r) || strings.ContainsRune(atomTerminators, r) {
			break
		}
		tk.next()
	}
	tk.add(Atom, begin, "")
}

func (tk *tokenizer) skipSpacesAndComments() {
	for tk.pos < len(tk.src) {
		r := tk.peek()
		switch {
		case unicode.IsSpace(r):
			tk.next()
		case r == ';':
			// A comment extends to the end of the line and is discarded.
			for tk.pos < len(tk.src) && tk.peek() != '\n' {
				tk.next()
			}
		default:
			return
		}
	}
}

func (tk *tokenizer) add(kind TokenKind, begin int, val string) {
	tk.tokens = append(tk.tokens, Token{kind, tk.src[begin:tk.pos], val,
		diag.Ranging{From: begin, To: tk.pos}})
}

func (tk *tokenizer) peek() rune {
	if tk.pos == len(tk.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(tk.src[tk.pos:])
	return r
}

func (tk *tokenizer) next() rune {
	if tk.pos == len(tk.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(tk.src[tk.pos:])
	tk.pos += s
	return r
}

func (tk *tokenizer) errorp(r diag.Ranging, e error, partial bool) {
	err := &SyntaxError{
		Message: e.Error(),
		Context: *diag.NewContext(tk.srcName, tk.src, r),
		Partial: partial,
	}
	tk.errors = append(tk.errors, err)
}

const eof rune = -1
