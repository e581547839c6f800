package edit

import (
	"fmt"
	"strings"

	"src.tled.dev/pkg/cli/term"
)

// Render draws the visible part of the active buffer and the status line
// into the writer. The viewport keeps the cursor line visible, scrolling by
// whole lines.
func (ed *Editor) Render(w *term.Writer, rows, cols int) {
	if rows < 2 || cols < 1 {
		return
	}
	textRows := rows - 1

	top := 0
	if ed.line >= textRows {
		top = ed.line - textRows + 1
	}

	w.HideCursor()
	w.Clear()
	lines := ed.Buffer().Lines()
	for i := 0; i < textRows && top+i < len(lines); i++ {
		w.MoveCursor(i+1, 1)
		w.WriteString(truncate(lines[top+i], cols))
	}

	w.MoveCursor(rows, 1)
	w.SetInverse(true)
	w.WriteString(truncate(ed.statusLine(), cols))
	w.SetInverse(false)

	w.MoveCursor(ed.line-top+1, ed.col+1)
	w.ShowCursor()
	w.Flush()
}

// statusLine assembles the mode indicator, buffer name, cursor position and
// the transient parts: pending prefix, command line, status message.
func (ed *Editor) statusLine() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, " %s  %s  %d,%d", strings.ToUpper(ed.mode.String()),
		ed.current, ed.line, ed.col)
	switch {
	case ed.mode == ModeCommand:
		fmt.Fprintf(&sb, "  :%s", ed.cmdline)
	case ed.mode == ModeMx:
		fmt.Fprintf(&sb, "  M-x %s", ed.cmdline)
	case len(ed.pending) > 0 && ed.status == "":
		fmt.Fprintf(&sb, "  %s-", ed.pendingString())
	}
	if ed.status != "" {
		fmt.Fprintf(&sb, "  %s", ed.status)
	}
	return sb.String()
}

func truncate(s string, cols int) string {
	runes := []rune(s)
	if len(runes) <= cols {
		return s
	}
	return string(runes[:cols])
}
