//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package term

import (
	"fmt"
	"os"

	"src.tled.dev/pkg/sys"
)

// Setup puts the terminal in the mode suitable for the editor and returns a
// function to restore the previous mode.
//
// On Unix the termios is changed through the input file; all fds pointing to
// the same terminal are equivalent.
func Setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := sys.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	savedTermios := term.Copy()

	term.SetICanon(false)
	term.SetEcho(false)
	term.SetVMin(1)
	term.SetVTime(0)
	// Editor keymaps bind Enter as \n, so translate the CR the terminal sends
	// for the Enter key.
	term.SetICRNL(true)

	err = term.ApplyToFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set terminal attribute: %w", err)
	}

	enterAltScreen(out)
	restore := func() error {
		exitAltScreen(out)
		return savedTermios.ApplyToFd(fd)
	}
	return restore, nil
}

func enterAltScreen(out *os.File) {
	out.WriteString("\033[?1049h\033[2J\033[H")
}

func exitAltScreen(out *os.File) {
	out.WriteString("\033[?1049l\033[?25h")
}
