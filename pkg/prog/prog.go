// Package prog provides the entry point to tled. Subprograms (the editor
// itself, the storage daemon, the language server, tooling) implement the
// Program interface; the main function composes them and runs the first one
// that applies.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"src.tled.dev/pkg/logutil"
)

// Program is a subprogram of tled.
type Program interface {
	// Run runs the subprogram with the process's three standard files, the
	// parsed flags and the remaining arguments. Returning ErrNotSuitable
	// passes control to the next program in a Composite.
	Run(fds [3]*os.File, f *Flags, args []string) error
}

// Flags keeps the command-line flags shared by all subprograms.
type Flags struct {
	Log, CPUProfile string

	Help, Version, BuildInfo, JSON bool

	NoRc bool
	RC   string

	Daemon bool
	LSP    bool

	DumpBindings bool

	DB, Sock string
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("tled", flag.ContinueOnError)
	// Errors and usage are printed explicitly by Run.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write the debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "a file to write the cpu profile to")

	fs.BoolVar(&f.Help, "help", false, "show usage and quit")
	fs.BoolVar(&f.Version, "version", false, "print the version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "print build information and quit")
	fs.BoolVar(&f.JSON, "json", false, "print output as JSON. Useful with -buildinfo")

	fs.BoolVar(&f.NoRc, "norc", false, "run without loading the rc file")
	fs.StringVar(&f.RC, "rc", "", "path to the rc file")

	fs.BoolVar(&f.Daemon, "daemon", false, "run the storage daemon instead of the editor")
	fs.BoolVar(&f.LSP, "lsp", false, "run the T-Lisp language server instead of the editor")

	fs.BoolVar(&f.DumpBindings, "dump-bindings", false, "print the default key bindings as YAML and quit")

	fs.StringVar(&f.DB, "db", "", "path to the session database")
	fs.StringVar(&f.Sock, "sock", "", "path to the daemon socket")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: tled [flags] [file]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses the command line and runs the first applicable subprogram,
// returning the exit status for the process.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			// Parse only returns ErrHelp when -h or -help was requested but
			// not defined. -help is defined above, so this must have been
			// -h; report it like any other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.CPUProfile != "" {
		if pf, err := os.Create(f.CPUProfile); err != nil {
			fmt.Fprintln(fds[2], "warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "continuing without CPU profiling")
		} else {
			pprof.StartCPUProfile(pf)
			defer pprof.StopCPUProfile()
		}
	}

	if f.Log != "" {
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err := p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
		return 2
	case exitError:
		return err.exit
	default:
		return 2
	}
}

// Composite chains programs: each is tried in order, and the first one not
// returning ErrNotSuitable wins.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		if err := p.Run(fds, f, args); err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// ErrNotSuitable may be returned from Program.Run to decline the invocation
// and let the next program in a Composite handle it.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns an error that makes Run print the message followed by the
// usage information, and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that makes Run exit with the given status without
// printing anything. Exit(0) is nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
