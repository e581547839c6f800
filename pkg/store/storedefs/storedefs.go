// Package storedefs contains definitions of the session store API.
//
// It is a separate package so that packages, such as the daemon client, can
// depend on the store API without depending on the bolt implementation.
package storedefs

import "errors"

// ErrNoLoc is returned when no saved location exists for a file.
var ErrNoLoc = errors.New("no saved location")

// ErrNoMatchingCmd is returned when no matching command exists in the
// command history.
var ErrNoMatchingCmd = errors.New("no matching command")

// Loc is a saved cursor location in a file.
type Loc struct {
	Line int
	Col  int
}

// Cmd is an entry in the M-x command history, together with its sequence
// number.
type Cmd struct {
	Text string
	Seq  int
}

// Store is the interface to the session store.
type Store interface {
	// Loc returns the saved cursor location of a file.
	Loc(path string) (Loc, error)
	// SetLoc saves the cursor location of a file.
	SetLoc(path string, loc Loc) error
	// DelLoc removes the saved cursor location of a file.
	DelLoc(path string) error

	// NextCmdSeq returns the sequence number the next added command will get.
	NextCmdSeq() (int, error)
	// AddCmd adds an entry to the command history and returns its sequence
	// number.
	AddCmd(text string) (int, error)
	// Cmd returns the command history entry with the given sequence number.
	Cmd(seq int) (string, error)
	// CmdsWithSeq returns all command history entries with sequence numbers
	// in [from, upto).
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	// PrevCmd finds the last command before the given sequence number
	// (exclusive) with the given prefix.
	PrevCmd(upto int, prefix string) (Cmd, error)
}
