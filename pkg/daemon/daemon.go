// Package daemon implements a service for mediating access to the session
// store, and its client.
//
// The service listens on a unix socket and speaks JSON-RPC 2.0, one JSON
// object per message. Besides the store RPCs it exposes an execute RPC that
// evaluates T-Lisp source in a daemon-owned interpreter, for tooling.
package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"src.tled.dev/pkg/logutil"
	"src.tled.dev/pkg/prog"
)

var logger = logutil.GetLogger("[daemon] ")

// Program is the daemon subprogram.
type Program struct {
	// Used in tests.
	serveOpts ServeOpts
}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.Daemon {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -daemon")
	}
	if f.Sock == "" || f.DB == "" {
		return prog.BadUsage("-daemon requires -sock and -db")
	}

	// The stdout is redirected to a log file when spawned by the editor, so
	// just use it for logging.
	logutil.SetOutput(fds[1])
	exit := Serve(f.Sock, f.DB, p.serveOpts)
	return prog.Exit(exit)
}

// ServeOpts keeps options that can be passed to Serve.
type ServeOpts struct {
	// If not nil, will be closed when the daemon is ready to serve requests.
	Ready chan<- struct{}
	// Causes the daemon to abort if closed or sent any data. If nil, Serve
	// will set up its own signal channel listening to SIGINT and SIGTERM.
	Signals <-chan os.Signal
}

// Serve runs the daemon service, listening on the unix socket specified by
// sockpath and serving data from dbpath until it receives a signal. It
// returns the exit status for the process.
func Serve(sockpath, dbpath string, opts ServeOpts) int {
	logger.Println("pid is", syscall.Getpid())
	logger.Println("going to listen", sockpath)

	sigCh := opts.Signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		sigCh = ch
	}

	done, err := serve(sockpath, dbpath, opts.Ready)
	if err != nil {
		logger.Printf("failed to serve: %v", err)
		return 2
	}
	<-sigCh
	logger.Println("received signal, shutting down")
	done()
	return 0
}
