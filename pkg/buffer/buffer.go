// Package buffer implements the immutable text buffer used by the editor.
//
// A Buffer stores text as an ordered sequence of lines; no line contains a
// line terminator. Every edit operation is pure: it returns a new Buffer and
// an error, and never mutates the receiver, so older versions of a buffer
// remain valid indefinitely.
//
// Positions are zero-based (line, column) pairs, with columns measured in
// runes. Out-of-range positions are rejected as errors, never clamped: a
// line must be in [0, LineCount()) and a column in [0, line length], where
// column == line length addresses the end-of-line insertion point.
package buffer

import (
	"fmt"
	"strings"
)

// Buffer is an immutable text buffer. The zero value is a buffer holding one
// empty line.
type Buffer struct {
	// Invariant: len(lines) >= 1, and no line contains "\n".
	lines []string
}

// New creates a Buffer from text. Content() on the result reconstructs the
// text exactly, including trailing newlines.
func New(content string) Buffer {
	return Buffer{strings.Split(content, "\n")}
}

// Content reconstructs the buffer text, including separators.
func (b Buffer) Content() string {
	return strings.Join(b.linesOrEmpty(), "\n")
}

// LineCount returns the number of lines. It is always at least 1.
func (b Buffer) LineCount() int {
	return len(b.linesOrEmpty())
}

// Line returns the line at the given index.
func (b Buffer) Line(line int) (string, error) {
	lines := b.linesOrEmpty()
	if line < 0 || line >= len(lines) {
		return "", fmt.Errorf("line %d out of range [0, %d)", line, len(lines))
	}
	return lines[line], nil
}

// Lines returns a copy of all lines.
func (b Buffer) Lines() []string {
	lines := b.linesOrEmpty()
	return append([]string(nil), lines...)
}

// InsertAt inserts text at a position. The text may contain newlines, in
// which case the line is split accordingly.
func (b Buffer) InsertAt(line, col int, text string) (Buffer, error) {
	lines := b.linesOrEmpty()
	runes, err := lineRunes(lines, line, col)
	if err != nil {
		return b, err
	}
	head, tail := string(runes[:col]), string(runes[col:])

	inserted := strings.Split(head+text+tail, "\n")
	out := make([]string, 0, len(lines)-1+len(inserted))
	out = append(out, lines[:line]...)
	out = append(out, inserted...)
	out = append(out, lines[line+1:]...)
	return Buffer{out}, nil
}

// DeleteAt deletes n runes from a position within one line. It rejects
// ranges that extend past the end of the line.
func (b Buffer) DeleteAt(line, col, n int) (Buffer, error) {
	lines := b.linesOrEmpty()
	runes, err := lineRunes(lines, line, col)
	if err != nil {
		return b, err
	}
	if n < 0 || col+n > len(runes) {
		return b, fmt.Errorf("delete range %d+%d out of range [0, %d]",
			col, n, len(runes))
	}
	return b.replace(line, string(runes[:col])+string(runes[col+n:])), nil
}

// ReplaceLine replaces the whole line at the given index. The new text must
// not contain a line terminator.
func (b Buffer) ReplaceLine(line int, text string) (Buffer, error) {
	lines := b.linesOrEmpty()
	if line < 0 || line >= len(lines) {
		return b, fmt.Errorf("line %d out of range [0, %d)", line, len(lines))
	}
	if strings.Contains(text, "\n") {
		return b, fmt.Errorf("replacement line contains a line terminator")
	}
	return b.replace(line, text), nil
}

// DeleteLine removes the line at the given index. Deleting the only line
// leaves a buffer with one empty line, keeping the line count invariant.
func (b Buffer) DeleteLine(line int) (Buffer, error) {
	lines := b.linesOrEmpty()
	if line < 0 || line >= len(lines) {
		return b, fmt.Errorf("line %d out of range [0, %d)", line, len(lines))
	}
	if len(lines) == 1 {
		return Buffer{[]string{""}}, nil
	}
	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:line]...)
	out = append(out, lines[line+1:]...)
	return Buffer{out}, nil
}

// SplitLine splits the line at the given column into two lines.
func (b Buffer) SplitLine(line, col int) (Buffer, error) {
	return b.InsertAt(line, col, "\n")
}

// JoinLines joins the line at the given index with the following line.
func (b Buffer) JoinLines(line int) (Buffer, error) {
	lines := b.linesOrEmpty()
	if line < 0 || line >= len(lines)-1 {
		return b, fmt.Errorf("line %d has no following line to join", line)
	}
	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:line]...)
	out = append(out, lines[line]+lines[line+1])
	out = append(out, lines[line+2:]...)
	return Buffer{out}, nil
}

// CharCount returns the number of runes in the content, counting line
// separators. It is computed on demand, not cached.
func (b Buffer) CharCount() int {
	n := 0
	lines := b.linesOrEmpty()
	for _, line := range lines {
		n += len([]rune(line))
	}
	return n + len(lines) - 1
}

// WordCount returns the number of whitespace-separated words in the content.
func (b Buffer) WordCount() int {
	n := 0
	for _, line := range b.linesOrEmpty() {
		n += len(strings.Fields(line))
	}
	return n
}

// replace returns a buffer with one line replaced. The caller has validated
// the index.
func (b Buffer) replace(line int, text string) Buffer {
	lines := b.linesOrEmpty()
	out := make([]string, len(lines))
	copy(out, lines)
	out[line] = text
	return Buffer{out}
}

// lineRunes validates a (line, col) position and returns the runes of the
// line.
func lineRunes(lines []string, line, col int) ([]rune, error) {
	if line < 0 || line >= len(lines) {
		return nil, fmt.Errorf("line %d out of range [0, %d)", line, len(lines))
	}
	runes := []rune(lines[line])
	if col < 0 || col > len(runes) {
		return nil, fmt.Errorf("column %d out of range [0, %d]", col, len(runes))
	}
	return runes, nil
}

// linesOrEmpty upholds the at-least-one-line invariant for the zero value.
func (b Buffer) linesOrEmpty() []string {
	if len(b.lines) == 0 {
		return []string{""}
	}
	return b.lines
}
