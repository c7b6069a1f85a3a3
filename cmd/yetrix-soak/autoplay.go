package main

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/geom"
	"github.com/plus3/yetrix/store"
)

// GameResult is the outcome of one autoplayed game.
type GameResult struct {
	Seed        uint64
	Score       int
	Ticks       uint64
	RowsCleared int
	Clears      int
	GameOver    bool
	WorstCond   int
	Elapsed     time.Duration
	Systems     []SystemTotal
}

// SystemTotal sums the run time of one simulation system.
type SystemTotal struct {
	Name  string
	Runs  int64
	Total time.Duration
}

// tally counts clears and catches the end of the game.
type tally struct {
	game.NopPresenter
	rows, clears int
	over         bool
	finalScore   int
}

func (t *tally) RowsCleared(rows []int, _ map[board.CellID]geom.Coord, _ float64) {
	t.rows += len(rows)
	t.clears++
}

func (t *tally) GameOver(score, _ int) {
	t.over = true
	t.finalScore = score
}

// playGame runs one game with random input until it ends or maxTicks pass. intentRate is the
// chance per tick that the player presses something.
func playGame(cfg config.Config, seed uint64, maxTicks int, intentRate float64) (GameResult, error) {
	cfg.Save.Backend = "memory"

	t := &tally{}
	c, err := game.New(cfg,
		game.WithPresenter(t),
		game.WithSlot(store.NewMemory()),
		game.WithRand(rand.New(rand.NewPCG(seed, seed^0x5eed))),
	)
	if err != nil {
		return GameResult{}, err
	}

	player := rand.New(rand.NewPCG(seed, ^seed))
	start := time.Now()
	for range maxTicks {
		if player.Float64() < intentRate {
			c.Apply(pickIntent(player))
		}
		c.Step()
		if t.over {
			break
		}
	}

	snap := c.Snapshot()
	res := GameResult{
		Seed:        seed,
		Score:       snap.Score,
		Ticks:       snap.Tick,
		RowsCleared: t.rows,
		Clears:      t.clears,
		GameOver:    t.over,
		WorstCond:   snap.WorstCond,
		Elapsed:     time.Since(start),
	}
	if t.over {
		res.Score = t.finalScore
	}
	for _, s := range c.Stats().Systems {
		res.Systems = append(res.Systems, SystemTotal{Name: s.Name, Runs: s.ExecutionCount, Total: s.TotalDuration})
	}
	return res, nil
}

// pickIntent favors sideways moves and rotations over drops, like a player lining pieces up.
func pickIntent(r *rand.Rand) game.Intent {
	switch n := r.IntN(10); {
	case n < 3:
		return game.IntentLeft
	case n < 6:
		return game.IntentRight
	case n < 8:
		return game.IntentRotate
	case n < 9:
		return game.IntentDown
	default:
		return game.IntentDrop
	}
}
