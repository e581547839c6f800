// Package term provides functionality for working with terminals: reading
// and decoding key events, writing screen updates, and entering raw mode.
package term

import (
	"errors"
	"fmt"

	"src.tled.dev/pkg/ui"
)

// Event is an event that can be read from the terminal.
type Event interface{ isEvent() }

// KeyEvent represents a key press.
type KeyEvent ui.Key

// WinSizeEvent is emitted after the terminal has been resized.
type WinSizeEvent struct{ Rows, Cols int }

// FatalErrorEvent represents an error that makes it impossible to continue
// reading events.
type FatalErrorEvent struct{ Err error }

func (KeyEvent) isEvent()        {}
func (WinSizeEvent) isEvent()    {}
func (FatalErrorEvent) isEvent() {}

// K constructs a KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// ErrStopped is returned by a Reader after it has been stopped.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

// SeqError describes a malformed or unrecognized escape sequence. It is
// recoverable: the reader can keep decoding subsequent input.
type SeqError struct {
	Msg string
	Seq string
}

func (err SeqError) Error() string {
	return fmt.Sprintf("%s: %q", err.Msg, err.Seq)
}
