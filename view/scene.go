// Package view keeps the presentation state of a running game: one tweened actor per cell,
// the score line, the sun angle and the sounds asked for. Frontends read it every frame and
// draw however they like.
package view

import (
	"cmp"
	"log/slog"
	"slices"
	"strconv"

	"github.com/kamstrup/intmap"
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/geom"
)

// Sounder plays a named sound. Implementations should not block.
type Sounder interface {
	Play(name string) bool
}

// Scene implements board.Listener and game.Presenter.
type Scene struct {
	blockSize    float64
	arcHeight    float64
	destroyDelay float64

	actors  *intmap.Map[board.CellID, *Actor]
	sounder Sounder
	log     *slog.Logger

	score, hiScore   int
	condition, worst int
	light            float64
	lastSound        string
	rotating         board.PieceID
	stage            game.RotationStage
	gameOvers        int
	lastGameOver     [2]int
}

var (
	_ board.Listener = (*Scene)(nil)
	_ game.Presenter = (*Scene)(nil)
)

// NewScene builds an empty scene. A nil sounder keeps sounds silent.
func NewScene(cfg config.Config, sounder Sounder, log *slog.Logger) *Scene {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scene{
		blockSize:    cfg.View.BlockSize,
		arcHeight:    cfg.View.DestroyYShift,
		destroyDelay: cfg.Board.DestroyDelay,
		actors:       intmap.New[board.CellID, *Actor](64),
		sounder:      sounder,
		log:          log,
		light:        cfg.Light.Init,
		rotating:     board.NoPiece,
	}
}

// Update advances every tween and fade by dt seconds.
func (s *Scene) Update(dt float64) {
	s.actors.ForEach(func(_ board.CellID, a *Actor) bool {
		a.update(dt)
		return true
	})
}

// Actor returns the actor of a cell.
func (s *Scene) Actor(id board.CellID) (*Actor, bool) {
	return s.actors.Get(id)
}

// Actors returns every actor ordered by cell id.
func (s *Scene) Actors() []*Actor {
	out := make([]*Actor, 0, s.actors.Len())
	s.actors.ForEach(func(_ board.CellID, a *Actor) bool {
		out = append(out, a)
		return true
	})
	slices.SortFunc(out, func(a, b *Actor) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// BlockSize is the world size of one cell.
func (s *Scene) BlockSize() float64 { return s.blockSize }

// ScoreText is the score line: the score alone, or score/hi once a hi score exists.
func (s *Scene) ScoreText() string {
	text := strconv.Itoa(s.score)
	if s.hiScore > 0 {
		text += "/" + strconv.Itoa(s.hiScore)
	}
	return text
}

func (s *Scene) Score() (score, hiScore int) { return s.score, s.hiScore }
func (s *Scene) Condition() (score, worst int) { return s.condition, s.worst }
func (s *Scene) Light() float64 { return s.light }
func (s *Scene) LastSound() string { return s.lastSound }
func (s *Scene) GameOvers() int { return s.gameOvers }
func (s *Scene) LastGameOver() (score, hi int) { return s.lastGameOver[0], s.lastGameOver[1] }

// Rotation returns the piece being rotated and its stage, or NoPiece and StageNone.
func (s *Scene) Rotation() (board.PieceID, game.RotationStage) {
	return s.rotating, s.stage
}

func (s *Scene) CellCreated(id board.CellID, pos geom.Coord) {
	a := &Actor{ID: id, Cell: pos}
	a.snap(WorldPos(pos, s.blockSize))
	s.actors.Put(id, a)
}

func (s *Scene) CellMoved(id board.CellID, pos geom.Coord, anim float64) {
	a, ok := s.actors.Get(id)
	if !ok {
		s.log.Debug("move for unknown actor", "cell", id)
		return
	}
	a.Cell = pos
	a.tween(WorldPos(pos, s.blockSize), anim, 0)
}

func (s *Scene) CellDestroying(id board.CellID) {
	a, ok := s.actors.Get(id)
	if !ok {
		return
	}
	a.destroying = true
	a.fadeLeft = s.destroyDelay
	a.fadeTotal = s.destroyDelay
}

func (s *Scene) CellRemoved(id board.CellID) {
	s.actors.Del(id)
}

// PlaySound records the name and forwards known names to the sounder.
func (s *Scene) PlaySound(name string) bool {
	if !slices.Contains(game.SoundNames, name) {
		s.log.Warn("unknown sound", "name", name)
		return false
	}
	s.lastSound = name
	if s.sounder == nil {
		return true
	}
	return s.sounder.Play(name)
}

func (s *Scene) ScoreChanged(score, hiScore int) {
	s.score, s.hiScore = score, hiScore
}

func (s *Scene) ConditionChanged(score, worst int) {
	s.condition, s.worst = score, worst
}

func (s *Scene) LightAngle(degrees float64) { s.light = degrees }

func (s *Scene) RotationStage(piece board.PieceID, stage game.RotationStage) {
	if stage == game.StageNone {
		piece = board.NoPiece
	}
	s.rotating, s.stage = piece, stage
}

// RowsCleared starts the arc of every cell that will settle once the rows are gone. The
// actors reach their landing spot as the destroy phase ends.
func (s *Scene) RowsCleared(rows []int, fall map[board.CellID]geom.Coord, duration float64) {
	for id, pos := range fall {
		a, ok := s.actors.Get(id)
		if !ok {
			continue
		}
		a.tween(WorldPos(pos, s.blockSize), duration, s.arcHeight)
	}
	s.log.Debug("rows cleared", "rows", rows, "falling", len(fall))
}

func (s *Scene) GameOver(score, hiScore int) {
	s.gameOvers++
	s.lastGameOver = [2]int{score, hiScore}
}
