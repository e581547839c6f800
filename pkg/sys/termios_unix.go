//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package sys

import (
	"golang.org/x/sys/unix"
)

// Termios wraps the terminal attribute structure, providing the handful of
// toggles the editor needs to enter and leave raw mode.
type Termios unix.Termios

// TermiosForFd returns the current terminal attributes of a file descriptor.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies the attributes to a file descriptor.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of the attributes.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetICanon sets the canonical-mode flag.
func (term *Termios) SetICanon(v bool) {
	setFlag(&term.Lflag, unix.ICANON, v)
}

// SetEcho sets the echo flag.
func (term *Termios) SetEcho(v bool) {
	setFlag(&term.Lflag, unix.ECHO, v)
}

// SetICRNL sets the CR-to-NL translation flag.
func (term *Termios) SetICRNL(v bool) {
	setFlag(&term.Iflag, unix.ICRNL, v)
}

// SetVMin sets the minimal number of characters for a non-canonical read.
func (term *Termios) SetVMin(v uint8) {
	term.Cc[unix.VMIN] = v
}

// SetVTime sets the timeout in deciseconds for a non-canonical read.
func (term *Termios) SetVTime(v uint8) {
	term.Cc[unix.VTIME] = v
}

func setFlag[F ~uint32 | ~uint64](flag *F, mask F, v bool) {
	if v {
		*flag |= mask
	} else {
		*flag &= ^mask
	}
}
