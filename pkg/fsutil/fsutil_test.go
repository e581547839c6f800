package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.tled.dev/pkg/must"
)

func TestReadFileOrEmpty(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.txt")

	got, err := ReadFileOrEmpty(name)
	if got != "" || err != nil {
		t.Errorf("nonexistent file: got (%q, %v), want (%q, nil)", got, err, "")
	}

	must.WriteFile(name, []byte("hello\nworld\n"))
	got, err = ReadFileOrEmpty(name)
	if got != "hello\nworld\n" || err != nil {
		t.Errorf("got (%q, %v), want (%q, nil)", got, err, "hello\nworld\n")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "b.txt")

	if err := WriteFileAtomic(name, "one"); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(name, "two"); err != nil {
		t.Fatal(err)
	}
	if got := string(must.ReadFile(name)); got != "two" {
		t.Errorf("got content %q, want %q", got, "two")
	}

	// No leftover temporary files.
	entries := must.OK1(os.ReadDir(dir))
	if len(entries) != 1 {
		t.Errorf("got %d files in dir, want 1", len(entries))
	}
}

func TestWriteFileAtomic_BadDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "no", "such", "dir", "c"), "x")
	if err == nil {
		t.Error("got nil err, want non-nil")
	}
}
