// Package store keeps the single save slot of a game. A slot holds one opaque blob that is
// replaced as a whole on every write.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/yetrix/config"
)

// ErrNotFound is returned by Read when nothing was saved yet.
var ErrNotFound = errors.New("save slot is empty")

// Slot is a named save location.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Open builds the slot described by cfg.
func Open(cfg config.SaveConfig) (Slot, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.Path, cfg.Slot)
	case "badger":
		return OpenBadger(cfg.Path, cfg.Slot)
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.Backend)
	}
}
