package game

import (
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/geom"
)

// Sound names emitted through Presenter.PlaySound.
const (
	SoundMoveLeft  = "k0"
	SoundMoveRight = "k1"
	SoundClick     = "k2"
	SoundGameOver  = "gameover"
	SoundYeah      = "yeah"

	// Prefixes completed with a random index.
	soundQuickDrop = "bdysh"
	soundOneRow    = "bah1"
)

// SoundNames lists every sound the controller may ask for.
var SoundNames = []string{
	"k0", "k1", "k2",
	"bdysh0", "bdysh1", "bdysh2",
	"bah10", "bah11", "bah12", "bah13",
	"bah20", "bah30", "bah40",
	"gameover", "yeah",
}

// Presenter receives everything the controller wants shown or heard. Cell positions travel
// separately through board.Listener. Calls happen on the simulation goroutine.
type Presenter interface {
	// PlaySound is best effort. Unknown names return false.
	PlaySound(name string) bool
	ScoreChanged(score, hiScore int)
	ConditionChanged(score, worst int)
	LightAngle(degrees float64)
	RotationStage(piece board.PieceID, stage RotationStage)
	// RowsCleared announces rows that started to blow up and where the cells above them will
	// land once the destroy phase ends, duration seconds from now.
	RowsCleared(rows []int, fall map[board.CellID]geom.Coord, duration float64)
	GameOver(score, hiScore int)
}

// NopPresenter ignores everything.
type NopPresenter struct{}

func (NopPresenter) PlaySound(string) bool { return false }
func (NopPresenter) ScoreChanged(int, int) {}
func (NopPresenter) ConditionChanged(int, int) {}
func (NopPresenter) LightAngle(float64) {}
func (NopPresenter) RotationStage(board.PieceID, RotationStage) {}
func (NopPresenter) RowsCleared([]int, map[board.CellID]geom.Coord, float64) {}
func (NopPresenter) GameOver(int, int) {}
