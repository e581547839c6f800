//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package sys

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL    = unix.TIOCGETA
	setAttrNowIOCTL = unix.TIOCSETA
)
