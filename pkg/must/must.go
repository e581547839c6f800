// Package must turns errors into panics.
//
// Tests use it to collapse setup steps whose failure can only mean a broken
// test environment. Production code should use it only where an error is
// provably impossible, like writing to an in-memory buffer.
package must

import (
	"io"
	"os"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, panicking if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// Pipe calls os.Pipe and panics on failure.
func Pipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	OK(err)
	return r, w
}

// ReadAllAndClose drains r, closes it and returns the content.
func ReadAllAndClose(r io.ReadCloser) []byte {
	data := OK1(io.ReadAll(r))
	OK(r.Close())
	return data
}

// ReadFile returns the content of the named file.
func ReadFile(name string) []byte {
	return OK1(os.ReadFile(name))
}

// WriteFile writes data to the named file with permission 0644.
func WriteFile(name string, data []byte) {
	OK(os.WriteFile(name, data, 0o644))
}
