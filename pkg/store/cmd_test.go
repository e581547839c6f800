package store

import (
	"reflect"
	"testing"

	"src.tled.dev/pkg/store/storedefs"
)

func TestCmd(t *testing.T) {
	st, cleanup := MustTempStore()
	defer cleanup()

	if seq, err := st.NextCmdSeq(); seq != 1 || err != nil {
		t.Errorf("got NextCmdSeq (%d, %v), want (1, nil)", seq, err)
	}

	cmds := []string{"save-buffer", "quit", "switch-buffer"}
	for i, c := range cmds {
		seq, err := st.AddCmd(c)
		if err != nil {
			t.Fatal("AddCmd:", err)
		}
		if seq != i+1 {
			t.Errorf("got seq %d, want %d", seq, i+1)
		}
	}

	if cmd, err := st.Cmd(2); cmd != "quit" || err != nil {
		t.Errorf("got Cmd(2) (%q, %v), want (%q, nil)", cmd, err, "quit")
	}
	if _, err := st.Cmd(100); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("got err %v, want ErrNoMatchingCmd", err)
	}

	got, err := st.CmdsWithSeq(1, 3)
	if err != nil {
		t.Fatal("CmdsWithSeq:", err)
	}
	want := []storedefs.Cmd{{Text: "save-buffer", Seq: 1}, {Text: "quit", Seq: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got cmds %v, want %v", got, want)
	}

	if cmd, err := st.PrevCmd(100, "s"); err != nil || cmd.Text != "switch-buffer" {
		t.Errorf("got PrevCmd (%v, %v), want switch-buffer", cmd, err)
	}
	if cmd, err := st.PrevCmd(3, "s"); err != nil || cmd.Text != "save-buffer" {
		t.Errorf("got PrevCmd (%v, %v), want save-buffer", cmd, err)
	}
	if _, err := st.PrevCmd(1, ""); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("got err %v, want ErrNoMatchingCmd", err)
	}
}
