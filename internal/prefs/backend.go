// ABOUTME: Byte-level key-value backends behind the preference store.
// ABOUTME: Badger on disk or in memory; Charm KV when preferences should sync.
package prefs

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by a Backend for a missing key.
var ErrNotFound = errors.New("preference not set")

// Backend is a minimal byte key-value store.
type Backend interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Close() error
}

type badgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger database in dir.
func OpenBadger(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(logrus.WithField("component", "badger"))
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	return &badgerBackend{db: db}, nil
}

// OpenMemory opens an in-memory badger database. Nothing is persisted.
func OpenMemory() (Backend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory prefs: %w", err)
	}
	return &badgerBackend{db: db}, nil
}

func (b *badgerBackend) Get(key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (b *badgerBackend) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *badgerBackend) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerBackend) Close() error {
	return b.db.Close()
}
