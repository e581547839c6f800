//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package term

import (
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"src.tled.dev/pkg/sys"
)

// fileReader reads single bytes from a file with a timeout and supports
// interrupting an outstanding read from another goroutine.
type fileReader interface {
	byteReaderWithTimeout
	// Stop aborts any outstanding read. It blocks until the read has
	// returned.
	Stop() error
	// Close releases the reader's resources. The underlying file is left
	// open.
	Close()
}

// newFileReader builds a fileReader around a self-pipe: a read waits on both
// the file and the pipe's read end, and Stop writes to the pipe's write end
// to wake it up.
func newFileReader(file *os.File) (fileReader, error) {
	stopR, stopW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &pipeStopReader{file: file, stopR: stopR, stopW: stopW}, nil
}

type pipeStopReader struct {
	file  *os.File
	stopR *os.File
	stopW *os.File

	// Held for the duration of a read, so Stop can tell when the read has
	// returned.
	reading sync.Mutex
}

func (r *pipeStopReader) ReadByteWithTimeout(timeout time.Duration) (byte, error) {
	r.reading.Lock()
	defer r.reading.Unlock()
	for {
		ready, err := sys.WaitForRead(timeout, r.file, r.stopR)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if ready[1] {
			// Drain the byte Stop wrote.
			var buf [1]byte
			r.stopR.Read(buf[:])
			return 0, ErrStopped
		}
		if !ready[0] {
			return 0, errTimeout
		}
		var buf [1]byte
		n, err := r.file.Read(buf[:])
		if err != nil {
			return 0, err
		}
		if n != 1 {
			return 0, io.ErrNoProgress
		}
		return buf[0], nil
	}
}

func (r *pipeStopReader) Stop() error {
	_, err := r.stopW.Write([]byte{'q'})
	r.reading.Lock()
	r.reading.Unlock()
	return err
}

func (r *pipeStopReader) Close() {
	r.stopR.Close()
	r.stopW.Close()
}
