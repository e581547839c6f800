package term

import (
	"os"
	"time"
)

// Reader reads and decodes terminal events.
type Reader interface {
	// ReadEvent reads a single event. It blocks until an event becomes
	// available, the Reader is stopped, or an error occurs.
	ReadEvent() (Event, error)
	// Stop aborts any outstanding ReadEvent call.
	Stop() error
	// Close releases resources associated with the Reader. It does not close
	// the underlying file.
	Close()
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (Reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &reader{fr}, nil
}

type reader struct {
	fr fileReader
}

func (rd *reader) ReadEvent() (Event, error) { return readEvent(rd.fr) }

func (rd *reader) Stop() error { return rd.fr.Stop() }

func (rd *reader) Close() { rd.fr.Close() }

// byteReaderWithTimeout reads a single byte with an optional timeout. A
// negative timeout means no timeout.
type byteReaderWithTimeout interface {
	ReadByteWithTimeout(timeout time.Duration) (byte, error)
}
