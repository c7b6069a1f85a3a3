// Package board is the authoritative grid of the game: the cell and piece registries,
// placement legality, movement and rotation search, row completion and save/load.
//
// The board owns all cell and piece storage. Other packages refer to cells and pieces by id
// and observe changes through a Listener; the board never holds presentation objects.
package board

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/yetrix/geom"
)

// Default geometry.
const (
	DefaultRightBorderX = 11
	DefaultCheckHeight  = 20
	DefaultDestroyDelay = 3.0
)

// Listener receives cell lifecycle notifications. Calls happen on the simulation goroutine.
type Listener interface {
	CellCreated(id CellID, pos geom.Coord)
	// CellMoved reports a new logical position; anim is the suggested animation time in seconds.
	CellMoved(id CellID, pos geom.Coord, anim float64)
	CellDestroying(id CellID)
	CellRemoved(id CellID)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) CellCreated(CellID, geom.Coord) {}
func (NopListener) CellMoved(CellID, geom.Coord, float64) {}
func (NopListener) CellDestroying(CellID) {}
func (NopListener) CellRemoved(CellID) {}

// Board stores cells and pieces. Occupancy is derived by scanning cells.
type Board struct {
	cells  *intmap.Map[CellID, *Cell]
	pieces *intmap.Map[PieceID, *Piece]

	nextCell  CellID
	nextPiece PieceID

	rightBorderX int
	checkHeight  int
	destroyDelay float64

	listener Listener
	rng      *rand.Rand
	log      *slog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithRightBorder sets the first illegal column on the right. Playable columns are 1..x-1.
func WithRightBorder(x int) Option {
	return func(b *Board) { b.rightBorderX = x }
}

// WithCheckHeight sets the exclusive upper row bound for row-clear scans.
func WithCheckHeight(h int) Option {
	return func(b *Board) { b.checkHeight = h }
}

// WithDestroyDelay sets how long a cleared cell lingers before removal, in seconds.
func WithDestroyDelay(seconds float64) Option {
	return func(b *Board) { b.destroyDelay = seconds }
}

// WithListener routes cell notifications to l.
func WithListener(l Listener) Option {
	return func(b *Board) { b.listener = l }
}

// WithRand sets the random source used to pick shapes.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.rng = r }
}

// WithLogger sets the logger used for unexpected registry misses.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// New creates an empty board.
func New(opts ...Option) *Board {
	b := &Board{
		cells:        intmap.New[CellID, *Cell](64),
		pieces:       intmap.New[PieceID, *Piece](8),
		rightBorderX: DefaultRightBorderX,
		checkHeight:  DefaultCheckHeight,
		destroyDelay: DefaultDestroyDelay,
		listener:     NopListener{},
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(0, 0))
	}
	return b
}

// RightBorderX returns the first illegal column on the right.
func (b *Board) RightBorderX() int { return b.rightBorderX }

// CheckHeight returns the exclusive upper bound of rows scanned for clears.
func (b *Board) CheckHeight() int { return b.checkHeight }

// SetListener replaces the notification target.
func (b *Board) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	b.listener = l
}

// SpawnPiece creates a piece of the given shape with its top-left corner at anchor.
// It fails without side effects when any of the new cells would overlap an alive cell
// or leave the board.
func (b *Board) SpawnPiece(shape Shape, anchor geom.Coord) (PieceID, bool) {
	if !shape.Valid() {
		return NoPiece, false
	}

	offsets := shapeOffsets[shape]
	for _, off := range offsets {
		if !b.CanPlaceAt(anchor.Add(off), NoPiece) {
			return NoPiece, false
		}
	}

	piece := &Piece{
		ID:    b.nextPiece,
		Shape: shape,
		Cells: make([]CellID, 0, len(offsets)),
	}
	b.nextPiece++

	for _, off := range offsets {
		cell := &Cell{
			ID:    b.nextCell,
			Pos:   anchor.Add(off),
			Piece: piece.ID,
		}
		b.nextCell++

		b.cells.Put(cell.ID, cell)
		piece.Cells = append(piece.Cells, cell.ID)
		b.listener.CellCreated(cell.ID, cell.Pos)
	}

	b.pieces.Put(piece.ID, piece)
	return piece.ID, true
}

// SpawnRandomPiece spawns a uniformly chosen shape at anchor.
func (b *Board) SpawnRandomPiece(anchor geom.Coord) (PieceID, bool) {
	shape := Shape(b.rng.IntN(ShapeCount))
	return b.SpawnPiece(shape, anchor)
}

// Cell returns a copy of the cell with the given id.
func (b *Board) Cell(id CellID) (Cell, bool) {
	c, ok := b.cells.Get(id)
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// Piece returns a copy of the piece with the given id.
func (b *Board) Piece(id PieceID) (Piece, bool) {
	p, ok := b.pieces.Get(id)
	if !ok {
		return Piece{}, false
	}
	return p.clone(), true
}

// CellAt returns the cell at pos. With aliveOnly, destroying cells are ignored.
// When several cells share pos the lowest id wins.
func (b *Board) CellAt(pos geom.Coord, aliveOnly bool) (Cell, bool) {
	c := b.cellAt(pos, aliveOnly)
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

func (b *Board) cellAt(pos geom.Coord, aliveOnly bool) *Cell {
	var found *Cell
	b.cells.ForEach(func(_ CellID, c *Cell) bool {
		if c.Pos != pos || (aliveOnly && !c.Alive()) {
			return true
		}
		if found == nil || c.ID < found.ID {
			found = c
		}
		return true
	})
	return found
}

// Cells returns copies of all registered cells ordered by id.
func (b *Board) Cells() []Cell {
	out := make([]Cell, 0, b.cells.Len())
	for _, id := range b.cellIDs() {
		c, _ := b.cells.Get(id)
		out = append(out, *c)
	}
	return out
}

// Pieces returns copies of all pieces ordered by id.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, b.pieces.Len())
	for _, id := range b.pieceIDs() {
		p, _ := b.pieces.Get(id)
		out = append(out, p.clone())
	}
	return out
}

// CellCount returns the number of registered cells, destroying ones included.
func (b *Board) CellCount() int { return b.cells.Len() }

// PieceCount returns the number of falling pieces.
func (b *Board) PieceCount() int { return b.pieces.Len() }

// Reset removes every cell and piece. IDs keep counting.
func (b *Board) Reset() {
	for _, id := range b.cellIDs() {
		b.listener.CellRemoved(id)
	}
	b.cells.Clear()
	b.pieces.Clear()
}

func (b *Board) cellIDs() []CellID {
	ids := make([]CellID, 0, b.cells.Len())
	b.cells.ForEach(func(id CellID, _ *Cell) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}

func (b *Board) pieceIDs() []PieceID {
	ids := make([]PieceID, 0, b.pieces.Len())
	b.pieces.ForEach(func(id PieceID, _ *Piece) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}

// pieceCells resolves the cells of p. A missing cell is a broken invariant; it is logged
// and the piece is treated as immovable.
func (b *Board) pieceCells(p *Piece) ([]*Cell, bool) {
	cells := make([]*Cell, 0, len(p.Cells))
	for _, id := range p.Cells {
		c, ok := b.cells.Get(id)
		if !ok {
			b.log.Error("piece references missing cell", "piece", p.ID, "cell", id)
			return nil, false
		}
		cells = append(cells, c)
	}
	return cells, true
}
