//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read or
// the timeout elapses. A negative timeout means no timeout. It returns a
// boolean array indicating which files are ready to be read and any possible
// error.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	pollFds := make([]unix.PollFd, len(files))
	for i, file := range files {
		pollFds[i].Fd = int32(file.Fd())
		pollFds[i].Events = unix.POLLIN
	}
	_, err = unix.Poll(pollFds, int(timeout.Milliseconds()))
	ready = make([]bool, len(files))
	for i, pollFd := range pollFds {
		ready[i] = pollFd.Revents != 0
	}
	return ready, err
}
