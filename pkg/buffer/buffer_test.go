package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.tled.dev/pkg/tt"
)

var roundtripTests = []string{
	"",
	"a",
	"hello world",
	"line1\nline2",
	"line1\nline2\n",
	"\n",
	"\n\n\n",
	"trailing space \n mixed\ttabs\n",
	"héllo wörld\n日本語",
}

func TestRoundtrip(t *testing.T) {
	for _, s := range roundtripTests {
		if got := New(s).Content(); got != s {
			t.Errorf("New(%q).Content() = %q, want the original", s, got)
		}
	}
}

func TestLineCount(t *testing.T) {
	tt.Test(t, tt.Fn("LineCount", func(s string) int {
		return New(s).LineCount()
	}), tt.Table{
		tt.Args("").Rets(1),
		tt.Args("a").Rets(1),
		tt.Args("a\nb").Rets(2),
		tt.Args("a\nb\n").Rets(3),
	})
}

func TestZeroValue(t *testing.T) {
	var b Buffer
	if b.LineCount() != 1 {
		t.Errorf("zero value LineCount = %d, want 1", b.LineCount())
	}
	if b.Content() != "" {
		t.Errorf("zero value Content = %q, want empty", b.Content())
	}
}

func TestInsertAt(t *testing.T) {
	b := New("hello\nworld")

	tests := []struct {
		name      string
		line, col int
		text      string
		want      string
	}{
		{"start of buffer", 0, 0, "say ", "say hello\nworld"},
		{"middle of line", 0, 2, "XY", "heXYllo\nworld"},
		{"end of line", 0, 5, "!", "hello!\nworld"},
		{"second line", 1, 0, ">", "hello\n>world"},
		{"empty text", 1, 3, "", "hello\nworld"},
		{"with newline", 0, 5, "\nthere", "hello\nthere\nworld"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := b.InsertAt(test.line, test.col, test.text)
			if err != nil {
				t.Fatalf("InsertAt -> error %v", err)
			}
			if diff := cmp.Diff(test.want, got.Content()); diff != "" {
				t.Errorf("InsertAt content (-want +got):\n%s", diff)
			}
			// The receiver is unchanged.
			if b.Content() != "hello\nworld" {
				t.Errorf("receiver mutated to %q", b.Content())
			}
		})
	}
}

func TestInsertAt_RejectsOutOfRange(t *testing.T) {
	b := New("hello")
	bad := []struct{ line, col int }{
		{-1, 0}, {1, 0}, {0, -1}, {0, 6},
	}
	for _, pos := range bad {
		if _, err := b.InsertAt(pos.line, pos.col, "x"); err == nil {
			t.Errorf("InsertAt(%d, %d) -> no error", pos.line, pos.col)
		}
	}
	// Column == line length is the end-of-line insertion point, not an
	// error.
	if _, err := b.InsertAt(0, 5, "x"); err != nil {
		t.Errorf("InsertAt(0, 5) -> error %v", err)
	}
}

func TestDeleteAt(t *testing.T) {
	b := New("hello\nworld")
	got, err := b.DeleteAt(0, 1, 3)
	if err != nil {
		t.Fatalf("DeleteAt -> error %v", err)
	}
	if got.Content() != "ho\nworld" {
		t.Errorf("DeleteAt -> %q, want %q", got.Content(), "ho\nworld")
	}
	if _, err := b.DeleteAt(0, 3, 3); err == nil {
		t.Errorf("DeleteAt past end of line -> no error")
	}
	if b.Content() != "hello\nworld" {
		t.Errorf("receiver mutated to %q", b.Content())
	}
}

func TestDeleteLine(t *testing.T) {
	b := New("a\nb\nc")
	got, err := b.DeleteLine(1)
	if err != nil {
		t.Fatalf("DeleteLine -> error %v", err)
	}
	if got.Content() != "a\nc" {
		t.Errorf("DeleteLine -> %q, want %q", got.Content(), "a\nc")
	}

	// Deleting the only line keeps the one-line invariant.
	only := New("solo")
	got, err = only.DeleteLine(0)
	if err != nil {
		t.Fatalf("DeleteLine -> error %v", err)
	}
	if got.LineCount() != 1 || got.Content() != "" {
		t.Errorf("DeleteLine on single line -> %q (%d lines), want one empty line",
			got.Content(), got.LineCount())
	}
}

func TestReplaceLine(t *testing.T) {
	b := New("a\nb")
	got, err := b.ReplaceLine(1, "B")
	if err != nil {
		t.Fatalf("ReplaceLine -> error %v", err)
	}
	if got.Content() != "a\nB" {
		t.Errorf("ReplaceLine -> %q, want %q", got.Content(), "a\nB")
	}
	if _, err := b.ReplaceLine(0, "x\ny"); err == nil {
		t.Errorf("ReplaceLine with embedded newline -> no error")
	}
}

func TestSplitAndJoin(t *testing.T) {
	b := New("hello world")
	split, err := b.SplitLine(0, 5)
	if err != nil {
		t.Fatalf("SplitLine -> error %v", err)
	}
	if split.Content() != "hello\n world" {
		t.Errorf("SplitLine -> %q, want %q", split.Content(), "hello\n world")
	}
	joined, err := split.JoinLines(0)
	if err != nil {
		t.Fatalf("JoinLines -> error %v", err)
	}
	if joined.Content() != "hello world" {
		t.Errorf("JoinLines -> %q, want %q", joined.Content(), "hello world")
	}
	if _, err := joined.JoinLines(0); err == nil {
		t.Errorf("JoinLines on last line -> no error")
	}
}

func TestStats(t *testing.T) {
	b := New("one two\nthree")
	if got := b.CharCount(); got != 13 {
		t.Errorf("CharCount = %d, want 13", got)
	}
	if got := b.WordCount(); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
	if got := New("").CharCount(); got != 0 {
		t.Errorf("CharCount of empty = %d, want 0", got)
	}
}
