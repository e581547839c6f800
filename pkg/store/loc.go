package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"src.tled.dev/pkg/store/storedefs"
)

const bucketLoc = "loc"

func init() {
	initDB["initialize location table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLoc))
		return err
	}
}

// Loc returns the saved cursor location of a file.
func (s *dbStore) Loc(path string) (storedefs.Loc, error) {
	var loc storedefs.Loc
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLoc))
		v := b.Get([]byte(path))
		if v == nil {
			return storedefs.ErrNoLoc
		}
		l, err := unmarshalLoc(v)
		if err != nil {
			return err
		}
		loc = l
		return nil
	})
	return loc, err
}

// SetLoc saves the cursor location of a file.
func (s *dbStore) SetLoc(path string, loc storedefs.Loc) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLoc))
		return b.Put([]byte(path), marshalLoc(loc))
	})
}

// DelLoc removes the saved cursor location of a file.
func (s *dbStore) DelLoc(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLoc))
		return b.Delete([]byte(path))
	})
}

func marshalLoc(loc storedefs.Loc) []byte {
	return []byte(fmt.Sprintf("%d,%d", loc.Line, loc.Col))
}

func unmarshalLoc(data []byte) (storedefs.Loc, error) {
	var loc storedefs.Loc
	_, err := fmt.Sscanf(string(data), "%d,%d", &loc.Line, &loc.Col)
	if err != nil {
		return storedefs.Loc{}, fmt.Errorf("bad location record %q", data)
	}
	return loc, nil
}
