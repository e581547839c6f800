// Package edit implements the modal editor core.
//
// An Editor owns a T-Lisp interpreter, a registry of immutable text buffers
// and the key-binding table. Keys are dispatched one at a time; each dispatch
// runs interpreter evaluation to completion before the next key is read, so
// nothing in this package needs locking.
package edit

import (
	"fmt"
	"io"
	"strings"

	"src.tled.dev/pkg/buffer"
	"src.tled.dev/pkg/fsutil"
	"src.tled.dev/pkg/logutil"
	"src.tled.dev/pkg/store/storedefs"
	"src.tled.dev/pkg/tlisp"
	"src.tled.dev/pkg/ui"
)

var logger = logutil.GetLogger("[edit] ")

// Mode identifies an editing mode.
type Mode int

// Editing modes.
const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeCommand
	ModeMx
)

var modeNames = [...]string{"normal", "insert", "visual", "command", "mx"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("(bad mode %d)", int(m))
	}
	return modeNames[m]
}

func parseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return 0, false
}

// scratchBuffer is the name of the buffer that exists from construction.
// File-backed buffers are named by their path.
const scratchBuffer = "*scratch*"

// Options configures an Editor.
type Options struct {
	// Store persists cursor locations and the M-x command history across
	// sessions. It may be nil, in which case nothing is persisted.
	Store storedefs.Store
	// Output receives the output of the print builtin. Defaults to
	// io.Discard.
	Output io.Writer
}

// SaveResult reports the completion of a detached save.
type SaveResult struct {
	Name string
	Err  error
}

// Editor is the modal editor core.
type Editor struct {
	interp *tlisp.Interp
	store  storedefs.Store

	mode    Mode
	status  string
	cmdline string // command and mx mode accumulator

	buffers map[string]buffer.Buffer
	// Buffer names in creation order, for buffer-list.
	bufferOrder []string
	current     string
	line, col   int

	bindings []BindingEntry
	pending  []ui.Key

	// Default bindings are loaded on the first key, not at construction, so
	// construction never depends on I/O availability.
	defaultsLoaded bool

	saveResults chan SaveResult
}

// NewEditor creates an Editor with a single empty scratch buffer.
func NewEditor(opts Options) *Editor {
	ed := &Editor{
		interp:      tlisp.New(),
		store:       opts.Store,
		buffers:     map[string]buffer.Buffer{scratchBuffer: buffer.New("")},
		bufferOrder: []string{scratchBuffer},
		current:     scratchBuffer,
		saveResults: make(chan SaveResult, 8),
	}
	if opts.Output != nil {
		ed.interp.SetOutput(opts.Output)
	}
	ed.registerBuiltins()
	return ed
}

// Interp returns the editor's interpreter. Host code can extend it with
// RegisterBuiltin before the first key is dispatched.
func (ed *Editor) Interp() *tlisp.Interp { return ed.interp }

// Mode returns the current editing mode.
func (ed *Editor) Mode() Mode { return ed.mode }

// Status returns the current status message.
func (ed *Editor) Status() string { return ed.status }

// CmdLine returns the pending command-line or M-x accumulator.
func (ed *Editor) CmdLine() string { return ed.cmdline }

// Buffer returns the active buffer.
func (ed *Editor) Buffer() buffer.Buffer { return ed.buffers[ed.current] }

// BufferName returns the name of the active buffer.
func (ed *Editor) BufferName() string { return ed.current }

// Cursor returns the cursor position in the active buffer.
func (ed *Editor) Cursor() (line, col int) { return ed.line, ed.col }

// SaveResults returns the channel on which detached saves report their
// completion. A save's success status message may be shown before its write
// is durable; this channel is where durability (or failure) is learned.
func (ed *Editor) SaveResults() <-chan SaveResult { return ed.saveResults }

// State is a snapshot of the editor for a rendering layer.
type State struct {
	Mode    Mode
	Buffer  string
	Line    int
	Col     int
	Status  string
	Pending string
	CmdLine string
}

// State returns a snapshot of the editor.
func (ed *Editor) State() State {
	return State{
		Mode:    ed.mode,
		Buffer:  ed.current,
		Line:    ed.line,
		Col:     ed.col,
		Status:  ed.status,
		Pending: ed.pendingString(),
		CmdLine: ed.cmdline,
	}
}

// SetState restores the mode, cursor and status from a snapshot. The buffer
// registry is not touched; an unknown buffer name is ignored.
func (ed *Editor) SetState(st State) {
	ed.mode = st.Mode
	ed.status = st.Status
	if _, ok := ed.buffers[st.Buffer]; ok {
		ed.current = st.Buffer
	}
	ed.line, ed.col = ed.clampCursor(st.Line, st.Col)
}

// Notify sets the status message.
func (ed *Editor) Notify(format string, args ...any) {
	ed.status = fmt.Sprintf(format, args...)
}

// Open reads the named file into a buffer, creating the buffer if needed,
// and makes it current. A nonexistent file yields an empty buffer. The saved
// cursor location, if any, is restored.
func (ed *Editor) Open(path string) error {
	content, err := fsutil.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}
	if _, ok := ed.buffers[path]; !ok {
		ed.bufferOrder = append(ed.bufferOrder, path)
	}
	ed.buffers[path] = buffer.New(content)
	ed.current = path
	ed.line, ed.col = 0, 0
	if ed.store != nil {
		if loc, err := ed.store.Loc(path); err == nil {
			ed.line, ed.col = ed.clampCursor(loc.Line, loc.Col)
		}
	}
	return nil
}

// Save writes the active buffer to its name as a detached task and returns
// immediately; completion is reported on SaveResults. The buffer name must
// be a file path, so the scratch buffer cannot be saved without a target.
func (ed *Editor) Save(path string) error {
	if path == "" {
		path = ed.current
	}
	if path == scratchBuffer {
		return fmt.Errorf("buffer %s has no file name", scratchBuffer)
	}
	content := ed.Buffer().Content()
	ed.rememberLoc()
	go func() {
		err := fsutil.WriteFileAtomic(path, content)
		if err != nil {
			logger.Printf("save %s: %v", path, err)
		}
		ed.saveResults <- SaveResult{path, err}
	}()
	return nil
}

// SwitchBuffer makes the named buffer current.
func (ed *Editor) SwitchBuffer(name string) error {
	if _, ok := ed.buffers[name]; !ok {
		return fmt.Errorf("no buffer named %s", name)
	}
	ed.rememberLoc()
	ed.current = name
	ed.line, ed.col = ed.clampCursor(ed.line, ed.col)
	return nil
}

// BufferNames returns the names of all buffers in creation order.
func (ed *Editor) BufferNames() []string {
	return append([]string(nil), ed.bufferOrder...)
}

// rememberLoc persists the cursor location of the current buffer.
func (ed *Editor) rememberLoc() {
	if ed.store == nil || ed.current == scratchBuffer {
		return
	}
	err := ed.store.SetLoc(ed.current, storedefs.Loc{Line: ed.line, Col: ed.col})
	if err != nil {
		logger.Printf("set loc for %s: %v", ed.current, err)
	}
}

// clampCursor clamps a cursor position to the active buffer. Cursor motion
// is a dispatch-level concern; unlike buffer edit positions it saturates
// instead of failing.
func (ed *Editor) clampCursor(line, col int) (int, int) {
	b := ed.Buffer()
	if line < 0 {
		line = 0
	}
	if line >= b.LineCount() {
		line = b.LineCount() - 1
	}
	text, _ := b.Line(line)
	n := len([]rune(text))
	if col < 0 {
		col = 0
	}
	if col > n {
		col = n
	}
	return line, col
}

func (ed *Editor) pendingString() string {
	names := make([]string, len(ed.pending))
	for i, k := range ed.pending {
		names[i] = k.String()
	}
	return strings.Join(names, " ")
}
