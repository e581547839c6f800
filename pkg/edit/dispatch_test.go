package edit

import (
	"path/filepath"
	"strings"
	"testing"

	"src.tled.dev/pkg/must"
	"src.tled.dev/pkg/ui"
)

func feedKeys(ed *Editor, keys ...ui.Key) Outcome {
	outcome := Continue
	for _, k := range keys {
		outcome = ed.HandleKey(k)
	}
	return outcome
}

func feedString(ed *Editor, s string) Outcome {
	outcome := Continue
	for _, r := range s {
		outcome = ed.HandleKey(ui.K(r))
	}
	return outcome
}

func TestDispatch_EnterInsertMode(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	if ed.Mode() != ModeInsert {
		t.Errorf("got mode %v, want %v", ed.Mode(), ModeInsert)
	}
}

func TestDispatch_InsertTyping(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	feedString(ed, "Hello")
	if content := ed.Buffer().Content(); content != "Hello" {
		t.Errorf("got content %q, want %q", content, "Hello")
	}
	if _, col := ed.Cursor(); col != 5 {
		t.Errorf("got col %d, want 5", col)
	}
}

func TestDispatch_InsertEnterAndBackspace(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	feedString(ed, "ab")
	ed.HandleKey(ui.K(ui.Enter))
	feedString(ed, "c")
	if content := ed.Buffer().Content(); content != "ab\nc" {
		t.Errorf("got content %q, want %q", content, "ab\nc")
	}

	ed.HandleKey(ui.K(ui.Backspace))
	ed.HandleKey(ui.K(ui.Backspace))
	if content := ed.Buffer().Content(); content != "ab" {
		t.Errorf("got content %q after backspaces, want %q", content, "ab")
	}
	if line, col := ed.Cursor(); line != 0 || col != 2 {
		t.Errorf("got cursor %d,%d, want 0,2", line, col)
	}
}

func TestDispatch_EscapeLeavesInsertMode(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	ed.HandleKey(ui.K(ui.Escape))
	if ed.Mode() != ModeNormal {
		t.Errorf("got mode %v, want %v", ed.Mode(), ModeNormal)
	}
}

func TestDispatch_CommandSave(t *testing.T) {
	ed := NewEditor(Options{})
	path := filepath.Join(t.TempDir(), "a.txt")
	must.OK(ed.Open(path))

	ed.HandleKey(ui.K('i'))
	feedString(ed, "saved text")
	ed.HandleKey(ui.K(ui.Escape))
	ed.HandleKey(ui.K(':'))
	if ed.Mode() != ModeCommand {
		t.Fatalf("got mode %v, want %v", ed.Mode(), ModeCommand)
	}
	feedString(ed, "w")
	ed.HandleKey(ui.K(ui.Enter))

	// The save is detached; durability is only known from the result event.
	res := <-ed.SaveResults()
	if res.Err != nil {
		t.Fatal("save:", res.Err)
	}
	if got := string(must.ReadFile(path)); got != "saved text" {
		t.Errorf("got file content %q, want %q", got, "saved text")
	}
}

func TestDispatch_CommandQuit(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K(':'))
	feedString(ed, "q")
	if outcome := ed.HandleKey(ui.K(ui.Enter)); outcome != Quit {
		t.Errorf("got outcome %v, want Quit", outcome)
	}
}

func TestDispatch_CommandOpenAndSwitch(t *testing.T) {
	ed := NewEditor(Options{})
	path := filepath.Join(t.TempDir(), "b.txt")
	must.WriteFile(path, []byte("file body"))

	ed.HandleKey(ui.K(':'))
	feedString(ed, "e "+path)
	ed.HandleKey(ui.K(ui.Enter))
	if ed.BufferName() != path {
		t.Fatalf("got buffer %q, want %q", ed.BufferName(), path)
	}
	if content := ed.Buffer().Content(); content != "file body" {
		t.Errorf("got content %q, want %q", content, "file body")
	}

	ed.HandleKey(ui.K(':'))
	feedString(ed, "b *scratch*")
	ed.HandleKey(ui.K(ui.Enter))
	if ed.BufferName() != "*scratch*" {
		t.Errorf("got buffer %q, want *scratch*", ed.BufferName())
	}
}

func TestDispatch_CommandUnknown(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K(':'))
	feedString(ed, "frobnicate")
	ed.HandleKey(ui.K(ui.Enter))
	if !strings.Contains(ed.Status(), "unknown command") {
		t.Errorf("got status %q, want unknown command message", ed.Status())
	}
}

func TestDispatch_TLispKeymapPrecedence(t *testing.T) {
	ed := NewEditor(Options{})
	// The native table binds j to cursor-down; the language-resident keymap
	// must shadow it.
	_, err := ed.Interp().Execute("[test]",
		`(keymap-set "normal" "j" "(editor-status \"from-keymap\")")`)
	if err != nil {
		t.Fatal(err)
	}
	ed.HandleKey(ui.K('j'))
	if ed.Status() != "from-keymap" {
		t.Errorf("got status %q, want %q", ed.Status(), "from-keymap")
	}
	if line, _ := ed.Cursor(); line != 0 {
		t.Errorf("got line %d, want 0 (native binding must not run)", line)
	}
}

func TestDispatch_ModeScopedMiss(t *testing.T) {
	ed := NewEditor(Options{})
	_, err := ed.Interp().Execute("[test]",
		`(key-bind "z" "(editor-status \"zed\")" "insert")`)
	if err != nil {
		t.Fatal(err)
	}
	ed.HandleKey(ui.K('z'))
	if !strings.Contains(ed.Status(), "unbound") {
		t.Errorf("got status %q, want unbound message", ed.Status())
	}
}

func TestDispatch_UnscopedFirstRegisteredWins(t *testing.T) {
	ed := NewEditor(Options{})
	ed.loadDefaults()
	_, err := ed.Interp().Execute("[test]", `
		(key-bind "g" "(editor-status \"first\")")
		(key-bind "g" "(editor-status \"second\")")`)
	if err != nil {
		t.Fatal(err)
	}
	ed.HandleKey(ui.K('g'))
	if ed.Status() != "first" {
		t.Errorf("got status %q, want %q", ed.Status(), "first")
	}
}

func TestDispatch_PrefixAndWhichKey(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K(ui.Space))
	if !ed.Pending() {
		t.Fatal("got no pending sequence after prefix key")
	}
	ed.PendingTimeout()
	if !strings.Contains(ed.Status(), "w") || !strings.Contains(ed.Status(), "q") {
		t.Errorf("got overlay %q, want completions listing w and q", ed.Status())
	}

	// The held prefix still completes after the overlay.
	if outcome := ed.HandleKey(ui.K('q')); outcome != Quit {
		t.Errorf("got outcome %v, want Quit", outcome)
	}
}

func TestDispatch_UnboundSequence(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K(ui.Space))
	ed.HandleKey(ui.K('!'))
	if !strings.Contains(ed.Status(), "unbound") {
		t.Errorf("got status %q, want unbound message", ed.Status())
	}
	if ed.Pending() {
		t.Error("pending sequence not cleared after unbound chord")
	}
}

func TestDispatch_ExecutionErrorBecomesStatus(t *testing.T) {
	ed := NewEditor(Options{})
	_, err := ed.Interp().Execute("[test]", `(key-bind "E" "(no-such-fn)")`)
	if err != nil {
		t.Fatal(err)
	}
	if outcome := ed.HandleKey(ui.K('E')); outcome != Continue {
		t.Errorf("got outcome %v, want Continue", outcome)
	}
	if !strings.Contains(ed.Status(), "unbound variable") {
		t.Errorf("got status %q, want unbound variable message", ed.Status())
	}
}

func TestDispatch_Motions(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	feedString(ed, "one")
	ed.HandleKey(ui.K(ui.Enter))
	feedString(ed, "two2")
	ed.HandleKey(ui.K(ui.Escape))

	feedKeys(ed, ui.K('k'))
	if line, col := ed.Cursor(); line != 0 || col != 3 {
		t.Errorf("got cursor %d,%d, want 0,3", line, col)
	}
	feedKeys(ed, ui.K('h'))
	if _, col := ed.Cursor(); col != 2 {
		t.Errorf("got col %d, want 2", col)
	}
	feedKeys(ed, ui.K('j'), ui.K('$'))
	if line, col := ed.Cursor(); line != 1 || col != 4 {
		t.Errorf("got cursor %d,%d, want 1,4", line, col)
	}
	feedKeys(ed, ui.K('0'))
	if _, col := ed.Cursor(); col != 0 {
		t.Errorf("got col %d, want 0", col)
	}
	// Motions saturate at buffer edges.
	feedKeys(ed, ui.K('j'), ui.K('j'))
	if line, _ := ed.Cursor(); line != 1 {
		t.Errorf("got line %d, want 1", line)
	}
}

func TestEditor_StateRoundTrip(t *testing.T) {
	ed := NewEditor(Options{})
	ed.HandleKey(ui.K('i'))
	feedString(ed, "abc")

	st := ed.State()
	if st.Mode != ModeInsert || st.Col != 3 || st.Buffer != "*scratch*" {
		t.Errorf("got state %+v", st)
	}

	st.Mode = ModeNormal
	st.Col = 1
	ed.SetState(st)
	if ed.Mode() != ModeNormal {
		t.Errorf("got mode %v, want %v", ed.Mode(), ModeNormal)
	}
	if _, col := ed.Cursor(); col != 1 {
		t.Errorf("got col %d, want 1", col)
	}
}

func TestDumpBindings(t *testing.T) {
	ed := NewEditor(Options{})
	var sb strings.Builder
	if err := ed.DumpBindings(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"key: i", "mode: normal", "mode: any", "editor-set-mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
}
