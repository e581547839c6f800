package lsp

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.tled.dev/pkg/diag"
	"src.tled.dev/pkg/tlisp/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// server keeps the state of one editing session: the current text of every
// open document, which the client pushes with full-sync didChange
// notifications.
type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{content: make(map[lsp.DocumentURI]string)}
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func handler(s *server) jsonrpc2.Handler {
	methods := map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/hover":     s.hover,

		// Notifications that need no reaction but shouldn't produce
		// method-not-found errors in the client's log.
		"initialized":                     noop,
		"textDocument/didClose":           noop,
		"workspace/didChangeWatchedFiles": noop,
	}
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

func noop(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error) {
	return nil, nil
}

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	syncOpts := lsp.TextDocumentSyncOptions{OpenClose: true, Change: lsp.TDSKFull}
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{Options: &syncOpts},
			HoverProvider:    true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	// Full sync; the single content change carries the whole document.
	s.update(ctx, conn, params.TextDocument.URI, params.ContentChanges[0].Text)
	return nil, nil
}

// update records the new document text and republishes diagnostics for it.
// Publishing is detached so a slow client write never stalls the request
// loop.
func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	s.content[uri] = content
	go conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content := s.content[params.TextDocument.URI]
	doc, ok := builtinDocs[symbolAt(content, params.Position)]
	if !ok {
		return lsp.Hover{}, nil
	}
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "markdown", Value: doc}},
	}, nil
}

// diagnostics parses the document and converts every syntax and parse error
// into a diagnostic. A clean document yields an empty, non-nil slice, which
// is what clears previously published diagnostics.
func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	_, err := parse.Parse(string(uri), content)
	for _, e := range parse.UnpackSyntaxErrors(err) {
		diags = append(diags, diagnostic(content, e, e.Message))
	}
	for _, e := range parse.UnpackErrors(err) {
		diags = append(diags, diagnostic(content, e, e.Message))
	}
	return diags
}

func diagnostic(content string, r diag.Ranger, message string) lsp.Diagnostic {
	rg := r.Range()
	return lsp.Diagnostic{
		Range: lsp.Range{
			Start: positionAt(content, rg.From),
			End:   positionAt(content, rg.To),
		},
		Severity: lsp.Error,
		Source:   "parse",
		Message:  message,
	}
}

// symbolAt returns the symbol the position falls inside, or "" when the
// position is on whitespace or a delimiter.
func symbolAt(content string, pos lsp.Position) string {
	idx := indexAt(content, pos)
	if idx > len(content) {
		return ""
	}
	isSym := func(b byte) bool {
		return !unicode.IsSpace(rune(b)) && !strings.ContainsRune("()'`,;\"", rune(b))
	}
	start, end := idx, idx
	for start > 0 && isSym(content[start-1]) {
		start--
	}
	for end < len(content) && isSym(content[end]) {
		end++
	}
	return content[start:end]
}

// positionAt converts a byte index into an LSP position, whose character
// offset counts UTF-16 code units.
func positionAt(s string, idx int) lsp.Position {
	var pos lsp.Position
	eachPosition(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// indexAt converts an LSP position into a byte index.
func indexAt(s string, pos lsp.Position) int {
	var idx int
	eachPosition(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

// eachPosition calls f with each (byte index, position) pair of s in order,
// including the pair one past the end, until f returns false. Both \r\n and
// lone \r or \n terminate lines; runes beyond the basic multilingual plane
// count as two UTF-16 units.
func eachPosition(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	afterCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !afterCR {
				p.Line++
				p.Character = 0
			}
		case r > 0xFFFF:
			p.Character += 2
		default:
			p.Character++
		}
		afterCR = r == '\r'
	}
	f(len(s), p)
}
