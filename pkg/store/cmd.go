package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"src.tled.dev/pkg/store/storedefs"
)

// The M-x command history bucket. Keys are big-endian sequence numbers, so a
// cursor walks the history in chronological order; values are the command
// text.
const bucketCmd = "mxcmd"

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// NextCmdSeq returns the sequence number the next added command will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends a command to the history and returns its sequence number.
func (s *dbStore) AddCmd(cmd string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		if seq, err = b.NextSequence(); err != nil {
			return err
		}
		return b.Put(seqKey(seq), []byte(cmd))
	})
	return int(seq), err
}

// Cmd returns the command with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var cmd string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCmd)).Get(seqKey(uint64(seq)))
		if v == nil {
			return storedefs.ErrNoMatchingCmd
		}
		cmd = string(v)
		return nil
	})
	return cmd, err
}

// CmdsWithSeq returns the commands with sequence numbers in [from, upto).
func (s *dbStore) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		k, v := c.Seek(seqKey(uint64(from)))
		for ; k != nil && keySeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, storedefs.Cmd{Text: string(v), Seq: int(keySeq(k))})
		}
		return nil
	})
	return cmds, err
}

// PrevCmd returns the newest command before upto (exclusive) whose text
// starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()

		// Position the cursor on the newest entry before upto. Seek lands on
		// upto itself (or the end), so step back once.
		var k, v []byte
		if k, _ = c.Seek(seqKey(uint64(upto))); k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}

		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = storedefs.Cmd{Text: string(v), Seq: int(keySeq(k))}
				return nil
			}
		}
		return storedefs.ErrNoMatchingCmd
	})
	return cmd, err
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

func keySeq(k []byte) uint64 {
	return binary.BigEndian.Uint64(k)
}
