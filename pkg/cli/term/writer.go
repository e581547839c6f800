package term

import (
	"bytes"
	"fmt"
	"io"
)

// Writer accumulates terminal output in a buffer and flushes it in a single
// write, avoiding flicker from incremental updates.
type Writer struct {
	out io.Writer
	buf bytes.Buffer
}

// NewWriter creates a new Writer that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteString appends raw text to the pending output.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// MoveCursor queues a cursor movement to the given 1-based position.
func (w *Writer) MoveCursor(row, col int) {
	fmt.Fprintf(&w.buf, "\033[%d;%dH", row, col)
}

// Clear queues erasing the whole screen and homing the cursor.
func (w *Writer) Clear() {
	w.buf.WriteString("\033[2J\033[H")
}

// ClearLine queues erasing the line under the cursor.
func (w *Writer) ClearLine() {
	w.buf.WriteString("\033[2K")
}

// HideCursor queues hiding the cursor.
func (w *Writer) HideCursor() {
	w.buf.WriteString("\033[?25l")
}

// ShowCursor queues showing the cursor.
func (w *Writer) ShowCursor() {
	w.buf.WriteString("\033[?25h")
}

// SetInverse queues turning inverse video on or off.
func (w *Writer) SetInverse(on bool) {
	if on {
		w.buf.WriteString("\033[7m")
	} else {
		w.buf.WriteString("\033[m")
	}
}

// Flush writes all pending output.
func (w *Writer) Flush() error {
	_, err := w.out.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
