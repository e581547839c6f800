//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package term

import (
	"time"
	"unicode/utf8"

	"src.tled.dev/pkg/ui"
)

// Sentinel returned by seq.read when the sequence has ended.
const seqEnd rune = -1

// How long to wait for the next byte of an escape sequence. Terminal
// emulators send whole sequences in one write, so 10ms is plenty locally;
// only very slow SSH links might split them further apart.
var keySeqTimeout = 10 * time.Millisecond

// seq accumulates the runes of one escape sequence as they are read, so that
// errors can report the whole offending sequence.
type seq struct {
	rd   byteReaderWithTimeout
	text string
}

// read reads the next rune of the sequence, returning seqEnd on timeout or
// any other error.
func (s *seq) read() rune {
	r, err := readRune(s.rd, keySeqTimeout)
	if err != nil {
		return seqEnd
	}
	s.text += string(r)
	return r
}

func (s *seq) error(msg string) error { return SeqError{msg, s.text} }

func readEvent(rd byteReaderWithTimeout) (Event, error) {
	r, err := readRune(rd, -1)
	if err != nil {
		return nil, err
	}
	if r != 0x1b {
		return KeyEvent(ctrlModify(r)), nil
	}

	s := &seq{rd: rd, text: string(r)}
	r2 := s.read()
	// rxvt and derivatives signal Alt by prepending another ESC to a CSI or
	// G3 sequence.
	altPrefix := false
	if r2 == 0x1b {
		altPrefix = true
		r2 = s.read()
	}
	switch r2 {
	case seqEnd:
		// A lone ESC byte. In a modal editor this is the Escape key, not
		// the start of anything.
		return K(ui.Escape), nil
	case '[':
		return readCSI(s, altPrefix)
	case 'O':
		return readG3(s, altPrefix)
	default:
		// Any other rune after ESC is that key with Alt, possibly Ctrl too.
		k := ctrlModify(r2)
		k.Mod |= ui.Alt
		return KeyEvent(k), nil
	}
}

// readCSI reads the rest of a CSI sequence: semicolon-separated numeric
// arguments followed by a terminator rune.
func readCSI(s *seq, altPrefix bool) (Event, error) {
	r := s.read()
	if r == seqEnd {
		return K('[', ui.Alt), nil
	}
	var nums []int
	for {
		switch {
		case r == ';':
			nums = append(nums, 0)
		case '0' <= r && r <= '9':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums[len(nums)-1] = nums[len(nums)-1]*10 + int(r-'0')
		case r == seqEnd:
			return nil, s.error("incomplete CSI")
		default:
			k := parseCSI(nums, r)
			if k == (ui.Key{}) {
				return nil, s.error("bad CSI")
			}
			if altPrefix {
				k.Mod |= ui.Alt
			}
			return KeyEvent(k), nil
		}
		r = s.read()
	}
}

// readG3 reads the single rune after \eO that identifies a G3 function key,
// like \eOP for F1.
func readG3(s *seq, altPrefix bool) (Event, error) {
	r := s.read()
	if r == seqEnd {
		return K('O', ui.Alt), nil
	}
	k, ok := g3Seq[r]
	if !ok {
		return nil, s.error("bad G3")
	}
	if altPrefix {
		k.Mod |= ui.Alt
	}
	return KeyEvent(k), nil
}

// readRune assembles one UTF-8 encoded rune from single-byte reads. A
// negative timeout means no timeout; continuation bytes always use
// keySeqTimeout since they belong to an already started rune.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	b, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return seqEnd, err
	}
	if b < utf8.RuneSelf {
		return rune(b), nil
	}
	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, err := rd.ReadByteWithTimeout(keySeqTimeout)
		if err != nil {
			break
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}

// ctrlModify maps control bytes back to the Ctrl-modified keys that produce
// them.
func ctrlModify(r rune) ui.Key {
	switch r {
	case 0x0:
		return ui.K('`', ui.Ctrl) // ^@
	case 0x1e:
		return ui.K('6', ui.Ctrl) // ^^
	case 0x1f:
		return ui.K('/', ui.Ctrl) // ^_
	case ui.Tab, ui.Enter, ui.Backspace:
		// Also ^I, ^J and ^?, but the unmodified reading is overwhelmingly
		// more likely.
		return ui.K(r)
	default:
		if 0x1 <= r && r <= 0x1d {
			return ui.K(r+0x40, ui.Ctrl)
		}
	}
	return ui.K(r)
}

// G3 function keys, identified by the rune after \eO.
var g3Seq = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End), 'M': ui.K(ui.Insert),
	'a': ui.K(ui.Up, ui.Ctrl), 'b': ui.K(ui.Down, ui.Ctrl),
	'c': ui.K(ui.Right, ui.Ctrl), 'd': ui.K(ui.Left, ui.Ctrl),
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// CSI sequences identified by the terminator rune, like \e[A for Up. With an
// xterm-style modifier they carry two numeric arguments, the first always 1:
// \e[1;5A is Ctrl-Up.
var csiSeqByLast = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'a': ui.K(ui.Up, ui.Shift), 'b': ui.K(ui.Down, ui.Shift),
	'c': ui.K(ui.Right, ui.Shift), 'd': ui.K(ui.Left, ui.Shift),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'Z': ui.K(ui.Tab, ui.Shift),
}

// CSI sequences terminated by '~' and identified by the first numeric
// argument, like \e[3~ for Delete. An optional second argument is an
// xterm-style modifier: \e[3;5~ is Ctrl-Delete.
var csiSeqTilde = map[int]rune{
	1: ui.Home, 4: ui.End,
	2: ui.Insert,
	3: ui.Delete,
	5: ui.PageUp, 6: ui.PageDown,
	7: ui.Home, 8: ui.End,
	11: ui.F1, 12: ui.F2, 13: ui.F3, 14: ui.F4,
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
}

// parseCSI resolves a complete CSI sequence to a key; the zero Key means the
// sequence is not recognized.
func parseCSI(nums []int, last rune) ui.Key {
	if k, ok := csiSeqByLast[last]; ok {
		switch {
		case len(nums) == 0:
			return k
		case len(nums) == 2 && nums[0] == 1:
			return xtermModify(k, nums[1])
		}
		return ui.Key{}
	}

	switch last {
	case '~':
		if len(nums) == 1 || len(nums) == 2 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				if len(nums) == 1 {
					return ui.K(r)
				}
				return xtermModify(ui.K(r), nums[1])
			}
		}
	case '$', '^', '@':
		// urxvt puts the modifier in the terminator itself: \e[3$ is
		// Shift-Delete, \e[3^ Ctrl-Delete, \e[3@ Ctrl-Shift-Delete.
		if len(nums) == 1 {
			if r, ok := csiSeqTilde[nums[0]]; ok {
				switch last {
				case '$':
					return ui.K(r, ui.Shift)
				case '^':
					return ui.K(r, ui.Ctrl)
				default:
					return ui.K(r, ui.Shift|ui.Ctrl)
				}
			}
		}
	}
	return ui.Key{}
}

// xtermModify applies an xterm-style numeric modifier: the argument minus
// one is a bitmap of Shift, Alt, Ctrl and Meta, with Meta conflated into
// Alt.
func xtermModify(k ui.Key, mod int) ui.Key {
	if mod < 0 || mod > 16 {
		return ui.Key{}
	}
	if mod == 0 {
		return k
	}
	bits := mod - 1
	if bits&0x1 != 0 {
		k.Mod |= ui.Shift
	}
	if bits&(0x2|0x8) != 0 {
		k.Mod |= ui.Alt
	}
	if bits&0x4 != 0 {
		k.Mod |= ui.Ctrl
	}
	return k
}
