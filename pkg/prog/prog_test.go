package prog

import (
	"os"
	"strings"
	"testing"

	"src.tled.dev/pkg/must"
)

type testProgram struct {
	name     string
	suitable bool
	err      error
	ran      *[]string
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if !p.suitable {
		return ErrNotSuitable
	}
	*p.ran = append(*p.ran, p.name)
	return p.err
}

func run(t *testing.T, p Program, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	outR, outW := must.Pipe()
	errR, errW := must.Pipe()
	exit = Run([3]*os.File{os.Stdin, outW, errW}, append([]string{"tled"}, args...), p)
	outW.Close()
	errW.Close()
	stdout = string(must.ReadAllAndClose(outR))
	stderr = string(must.ReadAllAndClose(errR))
	return exit, stdout, stderr
}

func TestRun_BadFlag(t *testing.T) {
	exit, _, stderr := run(t, Composite(), "-bad-flag")
	if exit != 2 {
		t.Errorf("got exit %d, want 2", exit)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("got stderr %q, want usage", stderr)
	}
}

func TestRun_Help(t *testing.T) {
	exit, stdout, _ := run(t, Composite(), "-help")
	if exit != 0 {
		t.Errorf("got exit %d, want 0", exit)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Errorf("got stdout %q, want usage", stdout)
	}
}

func TestRun_CompositeOrder(t *testing.T) {
	var ran []string
	p := Composite(
		testProgram{name: "a", ran: &ran},
		testProgram{name: "b", suitable: true, ran: &ran},
		testProgram{name: "c", suitable: true, ran: &ran})
	exit, _, _ := run(t, p)
	if exit != 0 {
		t.Errorf("got exit %d, want 0", exit)
	}
	if len(ran) != 1 || ran[0] != "b" {
		t.Errorf("got ran %v, want [b]", ran)
	}
}

func TestRun_NoSuitableProgram(t *testing.T) {
	var ran []string
	exit, _, stderr := run(t, Composite(testProgram{name: "a", ran: &ran}))
	if exit != 2 {
		t.Errorf("got exit %d, want 2", exit)
	}
	if !strings.Contains(stderr, "no suitable subprogram") {
		t.Errorf("got stderr %q", stderr)
	}
}

func TestRun_BadUsage(t *testing.T) {
	var ran []string
	p := testProgram{name: "a", suitable: true, err: BadUsage("need a file"), ran: &ran}
	exit, _, stderr := run(t, p)
	if exit != 2 {
		t.Errorf("got exit %d, want 2", exit)
	}
	if !strings.Contains(stderr, "need a file") || !strings.Contains(stderr, "Usage:") {
		t.Errorf("got stderr %q", stderr)
	}
}

func TestRun_ExitCode(t *testing.T) {
	var ran []string
	p := testProgram{name: "a", suitable: true, err: Exit(3), ran: &ran}
	exit, _, stderr := run(t, p)
	if exit != 3 {
		t.Errorf("got exit %d, want 3", exit)
	}
	if stderr != "" {
		t.Errorf("got stderr %q, want empty", stderr)
	}
}

func TestExit_Zero(t *testing.T) {
	if Exit(0) != nil {
		t.Error("Exit(0) should be nil")
	}
}
