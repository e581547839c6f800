// Package store implements the session store backed by a bolt database.
//
// The store remembers state across editor sessions: the last cursor location
// of each visited file and the M-x command history.
package store

import (
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.tled.dev/pkg/logutil"
	"src.tled.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent interface to the session store. It also supports
// closing the underlying database.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a session store backed by the named bolt database file,
// initializing the buckets if needed.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0o644,
		&bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a session store from an existing bolt database.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// MustTempStore returns a Store backed by a temporary file, and a cleanup
// function that should be called when the Store is no longer used.
func MustTempStore() (DBStore, func()) {
	f, err := os.CreateTemp("", "tled.test")
	if err != nil {
		panic(fmt.Sprintf("open temp file: %v", err))
	}
	db, err := bolt.Open(f.Name(), 0o644, &bolt.Options{
		NoSync:         true,
		NoFreelistSync: true,
	})
	if err != nil {
		panic(fmt.Sprintf("open temp store: %v", err))
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		panic(fmt.Sprintf("create temp store: %v", err))
	}
	return st, func() {
		st.Close()
		f.Close()
		err = os.Remove(f.Name())
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to remove temp file:", err)
		}
	}
}
