package ui

import (
	"testing"

	"src.tled.dev/pkg/tt"
)

func TestKeyString(t *testing.T) {
	tt.Test(t, tt.Fn("Key.String", Key.String), tt.Table{
		tt.Args(K('a')).Rets("a"),
		tt.Args(K('X', Ctrl)).Rets("Ctrl-X"),
		tt.Args(K('a', Alt)).Rets("Alt-a"),
		tt.Args(K(F1)).Rets("F1"),
		tt.Args(K(F1, Shift)).Rets("Shift-F1"),
		tt.Args(K(Up)).Rets("Up"),
		tt.Args(K(Tab)).Rets("Tab"),
		tt.Args(K(Enter)).Rets("Enter"),
		tt.Args(K(Backspace)).Rets("Backspace"),
		tt.Args(K(Escape)).Rets("Escape"),
	})
}

func TestParseKey(t *testing.T) {
	parse := func(s string) any {
		k, err := ParseKey(s)
		if err != nil {
			return err.Error()
		}
		return k
	}
	tt.Test(t, tt.Fn("ParseKey", parse), tt.Table{
		tt.Args("a").Rets(K('a')),
		tt.Args("-").Rets(K('-')),
		tt.Args("Ctrl-X").Rets(K('X', Ctrl)),
		tt.Args("ctrl-x").Rets(K('x', Ctrl)),
		tt.Args("C+x").Rets(K('x', Ctrl)),
		tt.Args("Alt-a").Rets(K('a', Alt)),
		tt.Args("Enter").Rets(K(Enter)),
		tt.Args("Escape").Rets(K(Escape)),
		tt.Args("F10").Rets(K(F10)),
		tt.Args("PageDown").Rets(K(PageDown)),
		tt.Args("bad-key-name").Rets(`bad modifier: "bad"`),
		tt.Args("Enterx").Rets(`bad key: "Enterx"`),
	})
}

func TestParseKeyRoundtrip(t *testing.T) {
	keys := []Key{
		K('j'), K('X', Ctrl), K(Enter), K(F5), K(Left, Shift),
	}
	for _, k := range keys {
		parsed, err := ParseKey(k.String())
		if err != nil {
			t.Errorf("ParseKey(%q) -> error %v", k.String(), err)
			continue
		}
		if parsed != k {
			t.Errorf("ParseKey(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
}
