package edit

import (
	"strings"
	"testing"

	"src.tled.dev/pkg/cli/term"
	"src.tled.dev/pkg/ui"
)

func TestRender(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	feedString(ed, "alpha")
	ed.HandleKey(ui.K(ui.Enter))
	feedString(ed, "beta")
	ed.HandleKey(ui.K(ui.Escape))

	var sb strings.Builder
	ed.Render(term.NewWriter(&sb), 10, 40)
	out := sb.String()
	for _, want := range []string{"alpha", "beta", "NORMAL", "*scratch*"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output does not contain %q:\n%q", want, out)
		}
	}
}

func TestRender_ScrollsToKeepCursorVisible(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	for i := 0; i < 9; i++ {
		feedString(ed, "line")
		ed.HandleKey(ui.K(ui.Enter))
	}
	feedString(ed, "last")
	ed.HandleKey(ui.K(ui.Escape))

	// 4 rows: 3 text rows plus the status line. The cursor is on the last
	// line, so the first line must be scrolled out.
	var sb strings.Builder
	ed.Render(term.NewWriter(&sb), 4, 40)
	out := sb.String()
	if !strings.Contains(out, "last") {
		t.Errorf("render output does not contain the cursor line:\n%q", out)
	}
}
