// Package fsutil contains filesystem helpers for opening and saving buffer
// files.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFileOrEmpty reads the content of the named file. A nonexistent file is
// not an error; it yields empty content, so that opening a new file gives an
// empty buffer.
func ReadFileOrEmpty(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

// WriteFileAtomic writes content to the named file. It writes to a temporary
// file in the same directory first and renames it over the destination, so a
// crash mid-write never leaves a truncated file.
func WriteFileAtomic(name, content string) error {
	dir := filepath.Dir(name)
	f, err := os.CreateTemp(dir, filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
