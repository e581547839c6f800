package edit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"src.tled.dev/pkg/fsutil"
	"src.tled.dev/pkg/prog"
	"src.tled.dev/pkg/store"
	"src.tled.dev/pkg/sys"
)

// Program is the editor subprogram. It is the fallback program, so it never
// returns prog.ErrNotSuitable.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.DumpBindings {
		ed := NewEditor(Options{})
		return ed.DumpBindings(fds[1])
	}
	if len(args) > 1 {
		return prog.BadUsage("at most one file may be given")
	}
	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[1].Fd()) {
		return errors.New("standard input and output must be a terminal")
	}

	// The editor runs without a session store if the database cannot be
	// opened; locations and history just won't persist.
	var st store.DBStore
	if dbpath, err := dbPath(f.DB); err != nil {
		fmt.Fprintln(fds[2], "warning:", err)
	} else if st, err = store.NewStore(dbpath); err != nil {
		fmt.Fprintf(fds[2], "warning: cannot open database %s: %v\n", dbpath, err)
		st = nil
	}
	if st != nil {
		defer st.Close()
	}

	ed := NewEditor(Options{Store: st, Output: fds[1]})

	if !f.NoRc {
		if err := loadRc(ed, f.RC); err != nil {
			fmt.Fprintln(fds[2], "warning:", err)
		}
	}
	if len(args) == 1 {
		if err := ed.Open(args[0]); err != nil {
			return err
		}
	}
	return Run(ed, fds[0], fds[1])
}

// dbPath resolves the session database path, creating its directory. An
// explicit -db flag wins over the default location.
func dbPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("find database directory: %w", err)
	}
	dir := filepath.Join(base, "tled")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return filepath.Join(dir, "db.bolt"), nil
}

// loadRc runs the user's rc file in the editor's interpreter. A missing rc
// file is not an error.
func loadRc(ed *Editor, path string) error {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("find rc file: %w", err)
		}
		path = filepath.Join(base, "tled", "rc.tlisp")
	}
	src, err := fsutil.ReadFileOrEmpty(path)
	if err != nil {
		return fmt.Errorf("read rc file: %w", err)
	}
	if src == "" {
		return nil
	}
	if _, err := ed.Interp().Execute(path, src); err != nil {
		return fmt.Errorf("run rc file: %w", err)
	}
	return nil
}
