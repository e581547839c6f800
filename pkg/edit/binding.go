package edit

import (
	_ "embed"
	"strings"

	"src.tled.dev/pkg/tlisp/vals"
)

//go:embed defaults.tlisp
var defaultsSrc string

// BindingEntry is one entry of the native key-binding table. Key is a
// canonical key-sequence string, single keys like "i" or chords like
// "Space f". Command is T-Lisp source executed when the binding fires.
type BindingEntry struct {
	Key     string
	Command string
	// Mode the binding is scoped to; ignored when Any is set.
	Mode Mode
	Any  bool
}

// Bindings returns a copy of the native binding table, in registration
// order. It is read-only access for tooling and tests.
func (ed *Editor) Bindings() []BindingEntry {
	ed.loadDefaults()
	return append([]BindingEntry(nil), ed.bindings...)
}

// Bind appends an entry to the native binding table. An empty mode name
// scopes the binding to every mode.
func (ed *Editor) Bind(key, command, mode string) error {
	entry := BindingEntry{Key: key, Command: command}
	if mode == "" {
		entry.Any = true
	} else {
		m, ok := parseMode(mode)
		if !ok {
			return unknownModeError(mode)
		}
		entry.Mode = m
	}
	ed.bindings = append(ed.bindings, entry)
	return nil
}

// loadDefaults loads the embedded default bindings. It runs at most once,
// triggered by the first dispatched key rather than by construction.
func (ed *Editor) loadDefaults() {
	if ed.defaultsLoaded {
		return
	}
	ed.defaultsLoaded = true
	if _, err := ed.interp.Execute("[defaults]", defaultsSrc); err != nil {
		logger.Printf("load default bindings: %v", err)
		ed.Notify("error loading default bindings: %v", err)
	}
}

// lookupCommand resolves a key sequence in the current mode. The
// T-Lisp-resident keymap takes precedence when it has a binding; the native
// table is the fallback. Among native entries the first one in registration
// order matching the current mode, or scoped to no mode at all, wins.
func (ed *Editor) lookupCommand(seq string) (string, bool) {
	if cmd, ok := ed.lookupTLispKeymap(seq); ok {
		return cmd, true
	}
	for _, b := range ed.bindings {
		if b.Key == seq && (b.Any || b.Mode == ed.mode) {
			return b.Command, true
		}
	}
	return "", false
}

// isPrefix reports whether the given sequence is a strict prefix of any
// binding available in the current mode.
func (ed *Editor) isPrefix(seq string) bool {
	prefix := seq + " "
	for _, b := range ed.bindings {
		if (b.Any || b.Mode == ed.mode) && strings.HasPrefix(b.Key, prefix) {
			return true
		}
	}
	for _, key := range ed.tlispKeymapKeys() {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// completions returns the bindings the given sequence is a strict prefix of,
// for the which-key overlay.
func (ed *Editor) completions(seq string) []BindingEntry {
	prefix := seq + " "
	var out []BindingEntry
	for _, key := range ed.tlispKeymapKeys() {
		if strings.HasPrefix(key, prefix) {
			cmd, _ := ed.lookupTLispKeymap(key)
			out = append(out, BindingEntry{Key: key, Command: cmd, Mode: ed.mode})
		}
	}
	for _, b := range ed.bindings {
		if (b.Any || b.Mode == ed.mode) && strings.HasPrefix(b.Key, prefix) {
			out = append(out, b)
		}
	}
	return out
}

// lookupTLispKeymap consults the language-resident keymap registered through
// the keymap-sync bridge: a *keymaps* hashmap of mode name to a hashmap of
// key sequence to command string.
func (ed *Editor) lookupTLispKeymap(seq string) (string, bool) {
	inner, ok := ed.tlispModeKeymap()
	if !ok {
		return "", false
	}
	v, ok := inner.Index(seq)
	if !ok {
		return "", false
	}
	cmd, ok := v.(string)
	return cmd, ok
}

func (ed *Editor) tlispKeymapKeys() []string {
	inner, ok := ed.tlispModeKeymap()
	if !ok {
		return nil
	}
	return inner.Keys()
}

func (ed *Editor) tlispModeKeymap() (vals.Map, bool) {
	v, err := ed.interp.Global().Lookup(keymapsVar)
	if err != nil {
		return vals.Map{}, false
	}
	m, ok := v.(vals.Map)
	if !ok {
		return vals.Map{}, false
	}
	inner, ok := m.Index(ed.mode.String())
	if !ok {
		return vals.Map{}, false
	}
	im, ok := inner.(vals.Map)
	return im, ok
}
