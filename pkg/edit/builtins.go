package edit

import (
	"fmt"

	"src.tled.dev/pkg/tlisp/eval"
	"src.tled.dev/pkg/tlisp/vals"
)

// keymapsVar is the global T-Lisp variable holding the language-resident
// keymaps: a hashmap from mode name to a hashmap from key sequence to
// command string. Dispatch consults it before the native table.
const keymapsVar = vals.Symbol("*keymaps*")

// registerBuiltins installs the editor builtins into the interpreter and
// initializes the *keymaps* global.
func (ed *Editor) registerBuiltins() {
	ed.interp.Global().Define(keymapsVar, vals.EmptyMap)

	builtins := map[string]func(args []any) (any, error){
		"key-bind":           ed.builtinKeyBind,
		"keymap-set":         ed.builtinKeymapSet,
		"editor-set-mode":    ed.builtinSetMode,
		"editor-mode":        ed.builtinMode,
		"editor-status":      ed.builtinStatus,
		"editor-quit":        ed.builtinQuit,
		"editor-open":        ed.builtinOpen,
		"editor-save":        ed.builtinSave,
		"buffer-insert":      ed.builtinBufferInsert,
		"buffer-delete-char": ed.builtinBufferDeleteChar,
		"buffer-line":        ed.builtinBufferLine,
		"buffer-content":     ed.builtinBufferContent,
		"buffer-line-count":  ed.builtinBufferLineCount,
		"buffer-switch":      ed.builtinBufferSwitch,
		"buffer-list":        ed.builtinBufferList,
		"cursor-line":        ed.builtinCursorLine,
		"cursor-col":         ed.builtinCursorCol,
		"cursor-move":        ed.builtinCursorMove,
		"cursor-up":          ed.motion(0, -1, 0),
		"cursor-down":        ed.motion(0, 1, 0),
		"cursor-left":        ed.motion(-1, 0, 0),
		"cursor-right":       ed.motion(1, 0, 0),
		"cursor-line-start":  ed.motion(0, 0, -1),
		"cursor-line-end":    ed.motion(0, 0, 1),
		"mx-history":         ed.builtinMxHistory,
	}
	for name, impl := range builtins {
		ed.interp.RegisterBuiltin(name, impl)
	}
}

// (key-bind <key> <command> [<mode>]) appends to the native binding table.
func (ed *Editor) builtinKeyBind(args []any) (any, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, eval.ArityError{Fn: "key-bind", Want: 2, Got: len(args), AtLeast: true}
	}
	key, err := toString("key-bind", args[0])
	if err != nil {
		return nil, err
	}
	command, err := toString("key-bind", args[1])
	if err != nil {
		return nil, err
	}
	mode := ""
	if len(args) == 3 {
		mode, err = toString("key-bind", args[2])
		if err != nil {
			return nil, err
		}
	}
	return nil, ed.Bind(key, command, mode)
}

// (keymap-set <mode> <key> <command>) updates the *keymaps* global, giving
// T-Lisp code a binding that shadows the native table.
func (ed *Editor) builtinKeymapSet(args []any) (any, error) {
	if len(args) != 3 {
		return nil, eval.ArityError{Fn: "keymap-set", Want: 3, Got: len(args)}
	}
	mode, err := toString("keymap-set", args[0])
	if err != nil {
		return nil, err
	}
	if _, ok := parseMode(mode); !ok {
		return nil, unknownModeError(mode)
	}
	key, err := toString("keymap-set", args[1])
	if err != nil {
		return nil, err
	}
	command, err := toString("keymap-set", args[2])
	if err != nil {
		return nil, err
	}

	keymaps := vals.EmptyMap
	if v, err := ed.interp.Global().Lookup(keymapsVar); err == nil {
		if m, ok := v.(vals.Map); ok {
			keymaps = m
		}
	}
	inner := vals.EmptyMap
	if v, ok := keymaps.Index(mode); ok {
		if m, ok := v.(vals.Map); ok {
			inner = m
		}
	}
	keymaps = keymaps.Assoc(mode, inner.Assoc(key, command))
	ed.interp.Global().Define(keymapsVar, keymaps)
	return nil, nil
}

func (ed *Editor) builtinSetMode(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "editor-set-mode", Want: 1, Got: len(args)}
	}
	name, err := toString("editor-set-mode", args[0])
	if err != nil {
		return nil, err
	}
	m, ok := parseMode(name)
	if !ok {
		return nil, unknownModeError(name)
	}
	ed.mode = m
	if m == ModeCommand || m == ModeMx {
		ed.cmdline = ""
	}
	return nil, nil
}

func (ed *Editor) builtinMode(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "editor-mode", Want: 0, Got: len(args)}
	}
	return ed.mode.String(), nil
}

func (ed *Editor) builtinStatus(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "editor-status", Want: 1, Got: len(args)}
	}
	msg, err := toString("editor-status", args[0])
	if err != nil {
		return nil, err
	}
	ed.status = msg
	return nil, nil
}

func (ed *Editor) builtinQuit(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "editor-quit", Want: 0, Got: len(args)}
	}
	return nil, errQuit
}

func (ed *Editor) builtinOpen(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "editor-open", Want: 1, Got: len(args)}
	}
	path, err := toString("editor-open", args[0])
	if err != nil {
		return nil, err
	}
	return nil, ed.Open(path)
}

func (ed *Editor) builtinSave(args []any) (any, error) {
	if len(args) > 1 {
		return nil, eval.ArityError{Fn: "editor-save", Want: 1, Got: len(args)}
	}
	path := ""
	if len(args) == 1 {
		var err error
		path, err = toString("editor-save", args[0])
		if err != nil {
			return nil, err
		}
	}
	return nil, ed.saveAndNotify(path)
}

func (ed *Editor) builtinBufferInsert(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "buffer-insert", Want: 1, Got: len(args)}
	}
	text, err := toString("buffer-insert", args[0])
	if err != nil {
		return nil, err
	}
	ed.insertText(text)
	return nil, nil
}

func (ed *Editor) builtinBufferDeleteChar(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "buffer-delete-char", Want: 0, Got: len(args)}
	}
	ed.deleteBack()
	return nil, nil
}

func (ed *Editor) builtinBufferLine(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "buffer-line", Want: 1, Got: len(args)}
	}
	n, err := toNumber("buffer-line", args[0])
	if err != nil {
		return nil, err
	}
	return ed.Buffer().Line(int(n))
}

func (ed *Editor) builtinBufferContent(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "buffer-content", Want: 0, Got: len(args)}
	}
	return ed.Buffer().Content(), nil
}

func (ed *Editor) builtinBufferLineCount(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "buffer-line-count", Want: 0, Got: len(args)}
	}
	return float64(ed.Buffer().LineCount()), nil
}

func (ed *Editor) builtinBufferSwitch(args []any) (any, error) {
	if len(args) != 1 {
		return nil, eval.ArityError{Fn: "buffer-switch", Want: 1, Got: len(args)}
	}
	name, err := toString("buffer-switch", args[0])
	if err != nil {
		return nil, err
	}
	return nil, ed.SwitchBuffer(name)
}

func (ed *Editor) builtinBufferList(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "buffer-list", Want: 0, Got: len(args)}
	}
	names := ed.BufferNames()
	list := make(vals.List, len(names))
	for i, name := range names {
		list[i] = name
	}
	return list, nil
}

func (ed *Editor) builtinCursorLine(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "cursor-line", Want: 0, Got: len(args)}
	}
	return float64(ed.line), nil
}

func (ed *Editor) builtinCursorCol(args []any) (any, error) {
	if len(args) != 0 {
		return nil, eval.ArityError{Fn: "cursor-col", Want: 0, Got: len(args)}
	}
	return float64(ed.col), nil
}

// (cursor-move <line> <col>) moves the cursor to an exact position; unlike
// the relative motions it rejects out-of-range positions.
func (ed *Editor) builtinCursorMove(args []any) (any, error) {
	if len(args) != 2 {
		return nil, eval.ArityError{Fn: "cursor-move", Want: 2, Got: len(args)}
	}
	line, err := toNumber("cursor-move", args[0])
	if err != nil {
		return nil, err
	}
	col, err := toNumber("cursor-move", args[1])
	if err != nil {
		return nil, err
	}
	l, c := int(line), int(col)
	if cl, cc := ed.clampCursor(l, c); cl != l || cc != c {
		return nil, fmt.Errorf("position %d,%d out of range", l, c)
	}
	ed.line, ed.col = l, c
	return nil, nil
}

// motion builds a relative cursor-motion builtin. dcol/dline move by one
// rune or line; dend of -1/1 jumps to line start/end. Motions saturate at
// buffer edges instead of failing.
func (ed *Editor) motion(dcol, dline, dend int) func(args []any) (any, error) {
	return func(args []any) (any, error) {
		if len(args) != 0 {
			return nil, eval.ArityError{Fn: "cursor motion", Want: 0, Got: len(args)}
		}
		line, col := ed.line+dline, ed.col+dcol
		if dend != 0 {
			text, _ := ed.Buffer().Line(ed.line)
			if dend < 0 {
				col = 0
			} else {
				col = len([]rune(text))
			}
		}
		ed.line, ed.col = ed.clampCursor(line, col)
		return nil, nil
	}
}

// (mx-history [<n>]) returns the most recent M-x commands, oldest first.
func (ed *Editor) builtinMxHistory(args []any) (any, error) {
	if len(args) > 1 {
		return nil, eval.ArityError{Fn: "mx-history", Want: 1, Got: len(args)}
	}
	n := 10
	if len(args) == 1 {
		f, err := toNumber("mx-history", args[0])
		if err != nil {
			return nil, err
		}
		n = int(f)
	}
	if ed.store == nil {
		return vals.List(nil), nil
	}
	next, err := ed.store.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	from := next - n
	if from < 1 {
		from = 1
	}
	cmds, err := ed.store.CmdsWithSeq(from, next)
	if err != nil {
		return nil, err
	}
	list := make(vals.List, len(cmds))
	for i, cmd := range cmds {
		list[i] = cmd.Text
	}
	return list, nil
}

func toString(fn string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", eval.TypeError{Fn: fn, Want: "string", Got: v}
	}
	return s, nil
}

func toNumber(fn string, v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, eval.TypeError{Fn: fn, Want: "number", Got: v}
	}
	return f, nil
}
