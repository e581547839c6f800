package edit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"src.tled.dev/pkg/must"
	"src.tled.dev/pkg/store"
	"src.tled.dev/pkg/tlisp/eval"
	"src.tled.dev/pkg/ui"
)

func TestBuiltin_EditorMode(t *testing.T) {
	ed := NewEditor(Options{})
	v, err := ed.Interp().Execute("[test]", `(editor-mode)`)
	if v != "normal" || err != nil {
		t.Errorf("got (%v, %v), want (normal, nil)", v, err)
	}
	must.OK1(ed.Interp().Execute("[test]", `(editor-set-mode "visual")`))
	if ed.Mode() != ModeVisual {
		t.Errorf("got mode %v, want %v", ed.Mode(), ModeVisual)
	}
}

func TestBuiltin_SetModeUnknown(t *testing.T) {
	ed := NewEditor(Options{})
	_, err := ed.Interp().Execute("[test]", `(editor-set-mode "bogus")`)
	if err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("got err %v, want unknown mode error", err)
	}
}

func TestBuiltin_ArityAndTypeErrors(t *testing.T) {
	ed := NewEditor(Options{})
	tests := []struct {
		src  string
		want any
	}{
		{`(editor-set-mode)`, &eval.ArityError{}},
		{`(cursor-move 1)`, &eval.ArityError{}},
		{`(buffer-insert 5)`, &eval.TypeError{}},
		{`(buffer-line "x")`, &eval.TypeError{}},
		{`(keymap-set "normal" "j")`, &eval.ArityError{}},
	}
	for _, test := range tests {
		_, err := ed.Interp().Execute("[test]", test.src)
		if err == nil {
			t.Errorf("%s: got nil error", test.src)
			continue
		}
		switch test.want.(type) {
		case *eval.ArityError:
			var target eval.ArityError
			if !errors.As(err, &target) {
				t.Errorf("%s: got %v, want ArityError", test.src, err)
			}
		case *eval.TypeError:
			var target eval.TypeError
			if !errors.As(err, &target) {
				t.Errorf("%s: got %v, want TypeError", test.src, err)
			}
		}
	}
}

func TestBuiltin_BufferOps(t *testing.T) {
	ed := NewEditor(Options{})
	must.OK1(ed.Interp().Execute("[test]", `(buffer-insert "ab\ncd")`))
	if v, _ := ed.Interp().Execute("[test]", `(buffer-content)`); v != "ab\ncd" {
		t.Errorf("got content %v, want %q", v, "ab\ncd")
	}
	if v, _ := ed.Interp().Execute("[test]", `(buffer-line-count)`); v != 2.0 {
		t.Errorf("got line count %v, want 2", v)
	}
	if v, _ := ed.Interp().Execute("[test]", `(buffer-line 1)`); v != "cd" {
		t.Errorf("got line %v, want %q", v, "cd")
	}
	if _, err := ed.Interp().Execute("[test]", `(buffer-line 9)`); err == nil {
		t.Error("got nil error for out-of-range line")
	}
	// The cursor follows the inserted text.
	if line, col := ed.Cursor(); line != 1 || col != 2 {
		t.Errorf("got cursor %d,%d, want 1,2", line, col)
	}
}

func TestBuiltin_CursorMoveRejectsOutOfRange(t *testing.T) {
	ed := NewEditor(Options{})
	must.OK1(ed.Interp().Execute("[test]", `(buffer-insert "abc")`))
	if _, err := ed.Interp().Execute("[test]", `(cursor-move 0 3)`); err != nil {
		t.Errorf("got err %v for end-of-line position, want nil", err)
	}
	if _, err := ed.Interp().Execute("[test]", `(cursor-move 0 4)`); err == nil {
		t.Error("got nil err for column past line end")
	}
	if _, err := ed.Interp().Execute("[test]", `(cursor-move 5 0)`); err == nil {
		t.Error("got nil err for line out of range")
	}
}

func TestBuiltin_BufferListAndSwitch(t *testing.T) {
	ed := NewEditor(Options{})
	path := filepath.Join(t.TempDir(), "c.txt")
	must.OK1(ed.Interp().Execute("[test]", `(editor-open "`+path+`")`))
	if ed.BufferName() != path {
		t.Fatalf("got buffer %q, want %q", ed.BufferName(), path)
	}

	v := must.OK1(ed.Interp().Execute("[test]", `(buffer-list)`))
	names, ok := v.([]any)
	if !ok || len(names) != 2 || names[0] != "*scratch*" || names[1] != path {
		t.Errorf("got buffer list %v", v)
	}

	must.OK1(ed.Interp().Execute("[test]", `(buffer-switch "*scratch*")`))
	if ed.BufferName() != "*scratch*" {
		t.Errorf("got buffer %q, want *scratch*", ed.BufferName())
	}
	if _, err := ed.Interp().Execute("[test]", `(buffer-switch "nope")`); err == nil {
		t.Error("got nil err for unknown buffer")
	}
}

func TestBuiltin_SaveScratchFails(t *testing.T) {
	ed := NewEditor(Options{})
	if _, err := ed.Interp().Execute("[test]", `(editor-save)`); err == nil {
		t.Error("got nil err saving the scratch buffer")
	}
}

func TestBuiltin_QuitSignal(t *testing.T) {
	ed := NewEditor(Options{})
	_, err := ed.Interp().Execute("[test]", `(editor-quit)`)
	if !errors.Is(err, errQuit) {
		t.Errorf("got err %v, want quit sentinel", err)
	}
}

func TestStoreIntegration(t *testing.T) {
	st, cleanup := store.MustTempStore()
	defer cleanup()
	dir := t.TempDir()
	path := filepath.Join(dir, "d.txt")
	must.WriteFile(path, []byte("line0\nline1\nline2"))

	ed := NewEditor(Options{Store: st})
	must.OK(ed.Open(path))
	must.OK1(ed.Interp().Execute("[test]", `(cursor-move 2 1)`))

	// M-x commands land in the persistent history.
	ed.HandleKey(ui.K('x', ui.Alt))
	if ed.Mode() != ModeMx {
		t.Fatalf("got mode %v, want %v", ed.Mode(), ModeMx)
	}
	feedString(ed, "buffer-line-count")
	ed.HandleKey(ui.K(ui.Enter))
	if cmd, err := st.PrevCmd(100, ""); err != nil || cmd.Text != "buffer-line-count" {
		t.Errorf("got history entry (%v, %v), want buffer-line-count", cmd, err)
	}
	v := must.OK1(ed.Interp().Execute("[test]", `(mx-history)`))
	if names, ok := v.([]any); !ok || len(names) != 1 || names[0] != "buffer-line-count" {
		t.Errorf("got mx-history %v", v)
	}

	// Switching away persists the location; reopening restores it.
	must.OK1(ed.Interp().Execute("[test]", `(cursor-move 2 1)`))
	must.OK(ed.SwitchBuffer("*scratch*"))
	ed2 := NewEditor(Options{Store: st})
	must.OK(ed2.Open(path))
	if line, col := ed2.Cursor(); line != 2 || col != 1 {
		t.Errorf("got restored cursor %d,%d, want 2,1", line, col)
	}
}
