package edit

import (
	"os"
	"time"

	"src.tled.dev/pkg/cli/term"
	"src.tled.dev/pkg/sys"
	"src.tled.dev/pkg/ui"
)

// How long a held prefix waits for the next key before the which-key overlay
// is shown.
var whichKeyTimeout = 500 * time.Millisecond

// Run drives the editor against a terminal: it puts the terminal in raw
// mode, reads and dispatches keys one at a time, and renders after every
// event. It returns after the quit outcome or a fatal read error, always
// restoring the terminal state first.
func Run(ed *Editor, in, out *os.File) error {
	restore, err := term.Setup(in, out)
	if err != nil {
		return err
	}
	defer restore()

	rd, err := term.NewReader(in)
	if err != nil {
		return err
	}
	defer rd.Close()

	events := make(chan term.Event)
	go func() {
		for {
			ev, err := rd.ReadEvent()
			switch err.(type) {
			case nil:
				events <- ev
			case term.SeqError:
				// Unrecognized escape sequence; drop it and keep reading.
				logger.Printf("read event: %v", err)
			default:
				if err != term.ErrStopped {
					events <- term.FatalErrorEvent{Err: err}
				}
				return
			}
		}
	}()
	defer rd.Stop()

	w := term.NewWriter(out)
	for {
		rows, cols := sys.WinSize(out)
		ed.Render(w, rows, cols)

		// The which-key timer races the arrival of the next key; it only
		// exists while a prefix is held.
		var timeout <-chan time.Time
		if ed.Pending() {
			timeout = time.After(whichKeyTimeout)
		}

		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case term.KeyEvent:
				if ed.HandleKey(ui.Key(ev)) == Quit {
					return nil
				}
			case term.WinSizeEvent:
				// Redrawn at the top of the loop.
			case term.FatalErrorEvent:
				return ev.Err
			}
		case <-timeout:
			ed.PendingTimeout()
		case res := <-ed.SaveResults():
			if res.Err != nil {
				ed.Notify("write %s failed: %v", res.Name, res.Err)
			}
		}
	}
}
