package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// Badger keeps the blob under one key of a badger database. Several slots can share a
// database by opening it once and calling NewBadgerSlot per slot.
type Badger struct {
	db   *badger.DB
	key  []byte
	owns bool
}

// OpenBadger opens (or creates) the database at dir and returns the named slot. Closing the
// slot closes the database.
func OpenBadger(dir, slot string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}

	b := NewBadgerSlot(db, slot)
	b.owns = true
	return b, nil
}

// OpenBadgerInMemory opens a throwaway in-memory database.
func OpenBadgerInMemory(slot string) (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}

	b := NewBadgerSlot(db, slot)
	b.owns = true
	return b, nil
}

// NewBadgerSlot uses an already open database. Closing the slot leaves db open.
func NewBadgerSlot(db *badger.DB, slot string) *Badger {
	return &Badger{db: db, key: []byte("save:" + slot)}
}

// Sibling returns another slot in the same database. It does not own the database.
func (b *Badger) Sibling(slot string) *Badger {
	return NewBadgerSlot(b.db, slot)
}

func (b *Badger) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save from badger: %w", err)
	}
	return data, nil
}

func (b *Badger) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, data)
	})
	if err != nil {
		return fmt.Errorf("write save to badger: %w", err)
	}
	return nil
}

func (b *Badger) Close() error {
	if !b.owns {
		return nil
	}
	return b.db.Close()
}
