package edit

import (
	"errors"
	"fmt"
	"strings"

	"src.tled.dev/pkg/ui"
)

// Outcome is the result of dispatching one key. The run loop switches on it
// exhaustively; quitting is an intentional outcome, not an error.
type Outcome int

// Values for Outcome.
const (
	Continue Outcome = iota
	Quit
)

// errQuit is the internal sentinel returned by the editor-quit builtin. It
// never escapes dispatch; HandleKey converts it to the Quit outcome.
var errQuit = errors.New("quit")

type unknownModeError string

func (err unknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q", string(err))
}

// HandleKey dispatches a single key in the current mode. Execution errors
// degrade to a status message; the only outcome that terminates the run loop
// is Quit.
func (ed *Editor) HandleKey(k ui.Key) Outcome {
	ed.loadDefaults()
	ed.status = ""

	switch ed.mode {
	case ModeInsert:
		if done, outcome := ed.handleInsertKey(k); done {
			return outcome
		}
	case ModeCommand, ModeMx:
		return ed.handleLineKey(k)
	}
	return ed.handleTableKey(k)
}

// handleTableKey runs the pending-sequence and table lookup machinery shared
// by normal and visual mode (and by keys insert mode does not intercept).
func (ed *Editor) handleTableKey(k ui.Key) Outcome {
	ed.pending = append(ed.pending, k)
	seq := ed.pendingString()

	if cmd, ok := ed.lookupCommand(seq); ok {
		ed.pending = nil
		return ed.executeCommand(cmd)
	}
	if ed.isPrefix(seq) {
		// A strict prefix of some binding: hold it and let the run loop race
		// the which-key timer against the next key.
		return Continue
	}
	ed.pending = nil
	ed.Notify("%s is unbound", seq)
	return Continue
}

// Pending reports whether a prefix key sequence is being held, in which case
// the run loop should arm the which-key timer.
func (ed *Editor) Pending() bool { return len(ed.pending) > 0 }

// PendingTimeout is called by the run loop when the which-key timer fires
// before the next key: the held prefix is kept, and an overlay listing its
// completions is shown.
func (ed *Editor) PendingTimeout() {
	if len(ed.pending) == 0 {
		return
	}
	seq := ed.pendingString()
	comps := ed.completions(seq)
	var b strings.Builder
	fmt.Fprintf(&b, "%s-", seq)
	for _, c := range comps {
		fmt.Fprintf(&b, "  %s → %s", strings.TrimPrefix(c.Key, seq+" "), c.Command)
	}
	ed.status = b.String()
}

// handleInsertKey intercepts the keys insert mode handles directly, editing
// the buffer without consulting the binding table. It reports whether the
// key was consumed.
func (ed *Editor) handleInsertKey(k ui.Key) (bool, Outcome) {
	switch {
	case k == ui.K(ui.Escape):
		ed.mode = ModeNormal
		return true, Continue
	case k == ui.K(ui.Enter):
		b, err := ed.Buffer().SplitLine(ed.line, ed.col)
		if err != nil {
			ed.Notify("%v", err)
			return true, Continue
		}
		ed.buffers[ed.current] = b
		ed.line, ed.col = ed.line+1, 0
		return true, Continue
	case k == ui.K(ui.Backspace):
		ed.deleteBack()
		return true, Continue
	case k.Mod == 0 && (k.Rune == ui.Tab || k.Rune >= ' '):
		ed.insertText(string(k.Rune))
		return true, Continue
	}
	return false, Continue
}

// handleLineKey accumulates keys into the command/M-x line. Enter submits,
// Escape cancels, Backspace erases; printable keys append.
func (ed *Editor) handleLineKey(k ui.Key) Outcome {
	switch {
	case k == ui.K(ui.Escape):
		ed.cmdline = ""
		ed.mode = ModeNormal
	case k == ui.K(ui.Backspace):
		if ed.cmdline != "" {
			runes := []rune(ed.cmdline)
			ed.cmdline = string(runes[:len(runes)-1])
		}
	case k == ui.K(ui.Enter):
		line := ed.cmdline
		mode := ed.mode
		ed.cmdline = ""
		ed.mode = ModeNormal
		if mode == ModeMx {
			return ed.runMxCommand(line)
		}
		return ed.runCommandLine(line)
	case k.Mod == 0 && k.Rune >= ' ':
		ed.cmdline += string(k.Rune)
	default:
		ed.Notify("%s is unbound", k)
	}
	return Continue
}

// runCommandLine interprets a submitted command-mode line, ex style: "w"
// saves, "q" quits, "wq" does both, "e path" opens, "b name" switches
// buffers. Anything else is an unknown command.
func (ed *Editor) runCommandLine(line string) Outcome {
	name, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	var err error
	outcome := Continue
	switch name {
	case "":
	case "w":
		err = ed.saveAndNotify(arg)
	case "q":
		outcome = Quit
	case "wq":
		if err = ed.saveAndNotify(arg); err == nil {
			outcome = Quit
		}
	case "e":
		if arg == "" {
			err = errors.New("e needs a file name")
		} else if err = ed.Open(arg); err == nil {
			ed.Notify("%s", arg)
		}
	case "b":
		if arg == "" {
			err = errors.New("b needs a buffer name")
		} else {
			err = ed.SwitchBuffer(arg)
		}
	default:
		err = fmt.Errorf("unknown command :%s", name)
	}
	if err != nil {
		ed.Notify("%v", err)
	}
	if outcome == Quit {
		ed.rememberLoc()
	}
	return outcome
}

// runMxCommand executes a submitted M-x line as a call to the named T-Lisp
// function, and appends it to the persistent command history.
func (ed *Editor) runMxCommand(line string) Outcome {
	line = strings.TrimSpace(line)
	if line == "" {
		return Continue
	}
	if ed.store != nil {
		if _, err := ed.store.AddCmd(line); err != nil {
			logger.Printf("add mx command to history: %v", err)
		}
	}
	return ed.executeCommand("(" + line + ")")
}

// executeCommand runs a bound command string in the interpreter. Any failure
// other than the quit sentinel becomes a status message; nothing propagates
// past dispatch.
func (ed *Editor) executeCommand(cmd string) Outcome {
	_, err := ed.interp.Execute("[binding]", cmd)
	if err != nil {
		if errors.Is(err, errQuit) {
			ed.rememberLoc()
			return Quit
		}
		ed.Notify("%v", err)
	}
	return Continue
}

// insertText inserts text at the cursor and places the cursor after it.
func (ed *Editor) insertText(text string) {
	b, err := ed.Buffer().InsertAt(ed.line, ed.col, text)
	if err != nil {
		ed.Notify("%v", err)
		return
	}
	ed.buffers[ed.current] = b
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		ed.line += strings.Count(text, "\n")
		ed.col = len([]rune(text[i+1:]))
	} else {
		ed.col += len([]rune(text))
	}
}

// deleteBack deletes the rune before the cursor, joining with the previous
// line at column 0.
func (ed *Editor) deleteBack() {
	switch {
	case ed.col > 0:
		b, err := ed.Buffer().DeleteAt(ed.line, ed.col-1, 1)
		if err != nil {
			ed.Notify("%v", err)
			return
		}
		ed.buffers[ed.current] = b
		ed.col--
	case ed.line > 0:
		prev, _ := ed.Buffer().Line(ed.line - 1)
		b, err := ed.Buffer().JoinLines(ed.line - 1)
		if err != nil {
			ed.Notify("%v", err)
			return
		}
		ed.buffers[ed.current] = b
		ed.line--
		ed.col = len([]rune(prev))
	}
}

// saveAndNotify starts a detached save and shows an optimistic status. The
// message may precede durability; SaveResults carries the real outcome.
func (ed *Editor) saveAndNotify(path string) error {
	if err := ed.Save(path); err != nil {
		return err
	}
	name := path
	if name == "" {
		name = ed.current
	}
	ed.Notify("wrote %s", name)
	return nil
}
