package board

import (
	"math"

	"github.com/plus3/yetrix/geom"
)

// CellID identifies a cell for its whole lifetime. IDs are never reused.
type CellID uint64

// PieceID identifies a falling piece.
type PieceID uint64

// NoPiece is the owner of a frozen cell.
const NoPiece = PieceID(math.MaxUint64)

// CellState tracks the destruction of a cell that was part of a cleared row.
type CellState uint8

const (
	CellAlive CellState = iota
	CellDestroying
	CellDestroyed
)

func (s CellState) String() string {
	switch s {
	case CellAlive:
		return "alive"
	case CellDestroying:
		return "destroying"
	case CellDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Cell is one unit square of the board.
type Cell struct {
	ID    CellID
	Pos   geom.Coord
	Piece PieceID
	State CellState

	// seconds left before a destroying cell leaves the registry
	destroyTimer float64
}

// Alive reports whether the cell still occupies its position.
func (c *Cell) Alive() bool {
	return c.State == CellAlive
}

// Frozen reports whether the cell is part of the landed stack.
func (c *Cell) Frozen() bool {
	return c.Piece == NoPiece
}

func (c *Cell) startDestroy(delay float64) {
	c.State = CellDestroying
	c.destroyTimer = delay
}

// tickDestroy returns true once the destroy delay has elapsed.
func (c *Cell) tickDestroy(dt float64) bool {
	if c.State != CellDestroying {
		return c.State == CellDestroyed
	}

	c.destroyTimer -= dt
	if c.destroyTimer <= 0 {
		c.destroyTimer = 0
		c.State = CellDestroyed
		return true
	}
	return false
}
