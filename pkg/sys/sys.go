// Package sys provides the system utilities the editor needs with the same
// API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file.
func WinSize(file *os.File) (rows, cols int) {
	return winSize(file)
}
