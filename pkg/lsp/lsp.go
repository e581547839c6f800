// Package lsp implements a language server for T-Lisp, giving editors with
// LSP clients parse diagnostics and hover documentation for rc files and
// other T-Lisp scripts.
package lsp

import (
	"context"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.tled.dev/pkg/prog"
)

// Program is the language server subprogram. The protocol runs over stdin
// and stdout with the standard Content-Length framing.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.LSP {
		return prog.ErrNotSuitable
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := jsonrpc2.NewBufferedStream(
		stdio{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, handler(newServer()))
	<-conn.DisconnectNotify()
	return nil
}

// stdio glues the process's standard files into the single ReadWriteCloser
// that jsonrpc2 wants.
type stdio struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (s stdio) Read(p []byte) (int, error)  { return s.in.Read(p) }
func (s stdio) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s stdio) Close() error {
	errIn := s.in.Close()
	errOut := s.out.Close()
	if errIn != nil {
		return errIn
	}
	return errOut
}
