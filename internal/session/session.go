// Package session wires the pieces every frontend needs: configuration, logger, save slot
// and a controller restored from the last save.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/logging"
	"github.com/plus3/yetrix/store"
)

type Session struct {
	Config     config.Config
	Log        *slog.Logger
	Slot       store.Slot
	Controller *game.Controller
}

// Options select the configuration file and override its log mode.
type Options struct {
	ConfigPath string
	LogMode    string
}

// Wire lets a frontend build its presenter once the configuration and logger are known.
type Wire func(cfg config.Config, log *slog.Logger) []game.Option

// Open loads the configuration, opens the save slot and builds a controller. wire may be nil.
func Open(o Options, wire Wire) (*Session, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.LogMode != "" {
		cfg.Log.Mode = o.LogMode
	}

	mode, err := logging.ParseMode(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("log mode: %w", err)
	}
	log := logging.New(mode)

	slot, err := store.Open(cfg.Save)
	if err != nil {
		return nil, fmt.Errorf("open save slot: %w", err)
	}

	opts := []game.Option{game.WithSlot(slot), game.WithLogger(log)}
	if wire != nil {
		opts = append(opts, wire(cfg, log)...)
	}
	c, err := game.New(cfg, opts...)
	if err != nil {
		slot.Close()
		return nil, err
	}

	return &Session{Config: cfg, Log: log, Slot: slot, Controller: c}, nil
}

// Restore loads the last save. A missing or unreadable save starts a fresh game.
func (s *Session) Restore(ctx context.Context) {
	err := s.Controller.Load(ctx)
	switch {
	case err == nil:
		snap := s.Controller.Snapshot()
		s.Log.Info("game restored", "score", snap.Score, "hiscore", snap.HiScore, "cells", snap.Cells)
	case errors.Is(err, store.ErrNotFound):
		s.Log.Info("no save found, starting a new game")
	default:
		s.Log.Warn("could not restore save, starting a new game", "err", err)
	}
}

// Close saves the game and releases the slot.
func (s *Session) Close(ctx context.Context) error {
	return errors.Join(s.Controller.Save(ctx), s.Slot.Close())
}
