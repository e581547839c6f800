//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

func winSize(file *os.File) (rows, cols int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	return int(ws.Row), int(ws.Col)
}
