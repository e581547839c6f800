//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package term

import (
	"testing"

	"github.com/creack/pty"

	"src.tled.dev/pkg/must"
)

func TestSetup(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	restore, err := Setup(tty, tty)
	if err != nil {
		t.Fatal("Setup:", err)
	}
	if err := restore(); err != nil {
		t.Error("restore:", err)
	}
}

func TestSetup_NonTerminal(t *testing.T) {
	pr, pw := must.Pipe()
	defer pr.Close()
	defer pw.Close()

	_, err := Setup(pr, pw)
	if err == nil {
		t.Error("got nil err, want non-nil for non-terminal file")
	}
}
