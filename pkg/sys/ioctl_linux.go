//go:build linux || solaris

package sys

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL    = unix.TCGETS
	setAttrNowIOCTL = unix.TCSETS
)
