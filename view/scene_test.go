package view_test

import (
	"testing"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/geom"
	"github.com/plus3/yetrix/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sounds []string

func (s *sounds) Play(name string) bool {
	*s = append(*s, name)
	return true
}

func newScene(t *testing.T) (*view.Scene, *sounds) {
	t.Helper()
	played := &sounds{}
	return view.NewScene(config.Default(), played, nil), played
}

func at(x, y int) geom.Coord { return geom.Coord{X: x, Y: y} }

func TestWorldPos(t *testing.T) {
	assert.Equal(t, view.Vec{X: 300, Y: 700}, view.WorldPos(at(3, 7), 100))
	assert.Equal(t, view.Vec{X: -50}, view.WorldPos(at(-1, 0), 50))
}

func TestActorTween(t *testing.T) {
	s, _ := newScene(t)
	s.CellCreated(1, at(2, 10))

	a, ok := s.Actor(1)
	require.True(t, ok)
	assert.Equal(t, view.Vec{X: 200, Y: 1000}, a.Pos())
	assert.False(t, a.Moving())

	s.CellMoved(1, at(2, 9), 0.1)
	assert.True(t, a.Moving())
	assert.Equal(t, at(2, 9), a.Cell)

	s.Update(0.05)
	assert.InDelta(t, 950, a.Pos().Y, 1e-9)

	s.Update(0.1)
	assert.Equal(t, view.Vec{X: 200, Y: 900}, a.Pos())
	assert.False(t, a.Moving())

	t.Run("zero duration snaps", func(t *testing.T) {
		s.CellMoved(1, at(5, 5), 0)
		assert.Equal(t, view.Vec{X: 500, Y: 500}, a.Pos())
	})

	t.Run("retarget starts from the current spot", func(t *testing.T) {
		s.CellMoved(1, at(6, 5), 0.2)
		s.Update(0.1)
		s.CellMoved(1, at(7, 5), 0.2)
		assert.InDelta(t, 550, a.Pos().X, 1e-9)
		s.Update(0.2)
		assert.InDelta(t, 700, a.Pos().X, 1e-9)
	})

	t.Run("unknown actor", func(t *testing.T) {
		s.CellMoved(99, at(1, 1), 0)
		_, ok := s.Actor(99)
		assert.False(t, ok)
	})
}

func TestDestroyArc(t *testing.T) {
	s, _ := newScene(t)
	s.CellCreated(1, at(3, 2))
	s.CellCreated(2, at(3, 1))

	s.CellDestroying(2)
	s.RowsCleared([]int{1}, map[board.CellID]geom.Coord{1: at(3, 1)}, 0.5)

	falling, _ := s.Actor(1)
	blown, _ := s.Actor(2)
	assert.True(t, blown.Destroying())
	assert.Equal(t, 1.0, blown.Alpha())

	s.Update(0.25)
	mid := falling.Pos()
	assert.InDelta(t, 150, mid.Y, 1e-9)
	assert.InDelta(t, 300, mid.Depth, 1e-9, "peak of the arc")
	assert.InDelta(t, 1-0.25/3.0, blown.Alpha(), 1e-9)

	s.Update(0.125)
	assert.InDelta(t, 150, falling.Pos().Depth, 1e-9)

	s.Update(0.125)
	assert.Equal(t, view.Vec{X: 300, Y: 100}, falling.Pos())

	s.CellMoved(1, at(3, 1), 0)
	s.CellRemoved(2)
	assert.Len(t, s.Actors(), 1)
}

func TestActorsOrdered(t *testing.T) {
	s, _ := newScene(t)
	for _, id := range []board.CellID{5, 1, 3} {
		s.CellCreated(id, at(int(id), 1))
	}

	var ids []board.CellID
	for _, a := range s.Actors() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []board.CellID{1, 3, 5}, ids)
}

func TestPresenter(t *testing.T) {
	s, played := newScene(t)

	t.Run("score text", func(t *testing.T) {
		s.ScoreChanged(40, 0)
		assert.Equal(t, "40", s.ScoreText())
		s.ScoreChanged(40, 120)
		assert.Equal(t, "40/120", s.ScoreText())
	})

	t.Run("sounds", func(t *testing.T) {
		assert.True(t, s.PlaySound(game.SoundClick))
		assert.False(t, s.PlaySound("boom"))
		assert.Equal(t, sounds{game.SoundClick}, *played)
		assert.Equal(t, game.SoundClick, s.LastSound())

		silent := view.NewScene(config.Default(), nil, nil)
		assert.True(t, silent.PlaySound(game.SoundYeah))
	})

	t.Run("rotation", func(t *testing.T) {
		s.RotationStage(4, game.StageMove)
		piece, stage := s.Rotation()
		assert.Equal(t, board.PieceID(4), piece)
		assert.Equal(t, game.StageMove, stage)

		s.RotationStage(4, game.StageNone)
		piece, _ = s.Rotation()
		assert.Equal(t, board.NoPiece, piece)
	})

	t.Run("light and condition", func(t *testing.T) {
		assert.Equal(t, -10.0, s.Light())
		s.LightAngle(5)
		assert.Equal(t, 5.0, s.Light())

		s.ConditionChanged(12, 30)
		score, worst := s.Condition()
		assert.Equal(t, [2]int{12, 30}, [2]int{score, worst})
	})

	t.Run("game over", func(t *testing.T) {
		s.GameOver(70, 120)
		score, hi := s.LastGameOver()
		assert.Equal(t, 1, s.GameOvers())
		assert.Equal(t, [2]int{70, 120}, [2]int{score, hi})
	})
}

func TestSceneFollowsController(t *testing.T) {
	cfg := config.Default()
	cfg.Save.Backend = "memory"
	cfg.Seed = 3

	s := view.NewScene(cfg, nil, nil)
	c, err := game.New(cfg, game.WithPresenter(s), game.WithListener(s))
	require.NoError(t, err)

	for range 3000 {
		c.Advance(1.0 / 60)
		s.Update(1.0 / 60)

		require.Equal(t, c.Board().CellCount(), len(s.Actors()))
		for _, a := range s.Actors() {
			cell, ok := c.Board().Cell(a.ID)
			require.True(t, ok)
			require.Equal(t, cell.Pos, a.Cell)
		}
	}
	assert.Equal(t, c.Snapshot().Score, mustScore(s))
}

func mustScore(s *view.Scene) int {
	score, _ := s.Score()
	return score
}
