package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Memory is an in-process cache on top of an in-memory Badger DB.
// Nothing is written to disk.
type Memory struct {
	db *badger.DB
}

func NewMemory() (*Memory, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Silence default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &Memory{db: db}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	var val []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores val under key. A ttl of zero keeps it until Close.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	return m.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

func (m *Memory) Close() error {
	return m.db.Close()
}
