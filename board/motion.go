package board

import (
	"math"
	"slices"

	"github.com/plus3/yetrix/geom"
)

// maxTravel caps the placement walk. Nothing bounds the board from above.
const maxTravel = 1 << 12

var (
	rotationOrder = []geom.Angle{geom.R90, geom.R180, geom.R270}
	kickOffsets   = []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}
)

// CanPlaceAt reports whether a cell of piece mover may occupy pos.
//
// Row 0, column 0 and columns from the right border on are outside the board; there is no
// top bound. Inside, pos is free when no alive cell sits there, or when the alive cell there
// belongs to mover itself. Frozen cells and cells of other pieces always block. Pass NoPiece
// to test a position for a brand new cell.
func (b *Board) CanPlaceAt(pos geom.Coord, mover PieceID) bool {
	if pos.Y <= 0 || pos.X <= 0 || pos.X >= b.rightBorderX {
		return false
	}

	occupant := b.cellAt(pos, true)
	if occupant == nil {
		return true
	}
	return mover != NoPiece && occupant.Piece == mover
}

// CellMoveDistance counts how many whole steps of dir the cell can travel.
func (b *Board) CellMoveDistance(id CellID, dir geom.Coord) int {
	c, ok := b.cells.Get(id)
	if !ok {
		b.log.Error("move distance of missing cell", "cell", id)
		return 0
	}
	return b.cellDistance(c, dir)
}

// CanCellMove reports whether the cell can move at least one step in dir.
func (b *Board) CanCellMove(id CellID, dir geom.Coord) bool {
	return b.CellMoveDistance(id, dir) > 0
}

func (b *Board) cellDistance(c *Cell, dir geom.Coord) int {
	if dir == (geom.Coord{}) {
		return 0
	}

	distance := 0
	pos := c.Pos
	for distance < maxTravel {
		pos = pos.Add(dir)
		if !b.CanPlaceAt(pos, c.Piece) {
			break
		}
		distance++
	}
	return distance
}

// PieceMoveDistance returns how far the whole piece can travel in dir: the minimum over its
// cells. The bool is false when the piece cannot move at all.
func (b *Board) PieceMoveDistance(id PieceID, dir geom.Coord) (int, bool) {
	p, ok := b.pieces.Get(id)
	if !ok {
		b.log.Error("move distance of missing piece", "piece", id)
		return 0, false
	}
	return b.pieceDistance(p, dir)
}

// CanPieceMove reports whether the piece can move at least one step in dir.
func (b *Board) CanPieceMove(id PieceID, dir geom.Coord) bool {
	_, ok := b.PieceMoveDistance(id, dir)
	return ok
}

func (b *Board) pieceDistance(p *Piece, dir geom.Coord) (int, bool) {
	cells, ok := b.pieceCells(p)
	if !ok || len(cells) == 0 {
		return 0, false
	}

	distance := math.MaxInt
	for _, c := range cells {
		d := b.cellDistance(c, dir)
		if d == 0 {
			return 0, false
		}
		distance = min(distance, d)
	}
	return distance, true
}

// RotatedPositions searches for a legal rotation of the piece.
//
// Rotations are tried in the order 90, 180, 270 degrees clockwise; for each rotation the
// kick offsets (0,0), (1,0), (-1,0), (0,-1), (0,1) are tried in turn. The pivot is the first
// cell's position plus the offset. The first combination that places every cell wins. An empty
// map means the piece cannot rotate. The board is not modified.
func (b *Board) RotatedPositions(id PieceID) map[CellID]geom.Coord {
	p, ok := b.pieces.Get(id)
	if !ok {
		b.log.Error("rotation of missing piece", "piece", id)
		return map[CellID]geom.Coord{}
	}

	cells, ok := b.pieceCells(p)
	if !ok || len(cells) == 0 {
		return map[CellID]geom.Coord{}
	}

	for _, angle := range rotationOrder {
		for _, offset := range kickOffsets {
			origin := cells[0].Pos.Add(offset)

			targets := make(map[CellID]geom.Coord, len(cells))
			blocked := false
			for _, c := range cells {
				rel := c.Pos.Add(offset).Sub(origin)
				pos := geom.Rotate(angle, rel).Add(origin)
				if !b.CanPlaceAt(pos, p.ID) {
					blocked = true
					break
				}
				targets[c.ID] = pos
			}

			if !blocked {
				return targets
			}
		}
	}

	return map[CellID]geom.Coord{}
}

// ApplyPositions moves the listed cells to their new positions.
func (b *Board) ApplyPositions(positions map[CellID]geom.Coord, anim float64) {
	ids := make([]CellID, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		c, ok := b.cells.Get(id)
		if !ok {
			b.log.Warn("apply position to missing cell", "cell", id)
			continue
		}
		c.Pos = positions[id]
		b.listener.CellMoved(c.ID, c.Pos, anim)
	}
}

// MovePiece translates the piece by dir when every cell can make the step.
func (b *Board) MovePiece(id PieceID, dir geom.Coord, anim float64) bool {
	p, ok := b.pieces.Get(id)
	if !ok {
		return false
	}
	if _, ok := b.pieceDistance(p, dir); !ok {
		return false
	}

	for _, cid := range p.Cells {
		c, _ := b.cells.Get(cid)
		c.Pos = c.Pos.Add(dir)
		b.listener.CellMoved(c.ID, c.Pos, anim)
	}
	return true
}

// DropPiece moves the piece down by rows without checking legality. Callers pass a distance
// obtained from PieceMoveDistance on the current board.
func (b *Board) DropPiece(id PieceID, rows int, anim float64) {
	p, ok := b.pieces.Get(id)
	if !ok {
		b.log.Warn("drop of missing piece", "piece", id)
		return
	}
	cells, ok := b.pieceCells(p)
	if !ok {
		return
	}
	for _, c := range cells {
		c.Pos.Y -= rows
		b.listener.CellMoved(c.ID, c.Pos, anim)
	}
}

// MoveLowestPiece moves the lowest falling piece by dir. Player moves only ever act on it.
func (b *Board) MoveLowestPiece(dir geom.Coord, anim float64) bool {
	id, ok := b.LowestPiece()
	if !ok {
		return false
	}
	return b.MovePiece(id, dir, anim)
}

// DeconstructPieces freezes every piece that can no longer fall: its cells lose their owner
// and the piece entry is erased. It reports whether anything froze.
func (b *Board) DeconstructPieces() bool {
	var landed []*Piece
	for _, id := range b.pieceIDs() {
		p, _ := b.pieces.Get(id)
		if _, canFall := b.pieceDistance(p, geom.Down); !canFall {
			landed = append(landed, p)
		}
	}

	for _, p := range landed {
		for _, cid := range p.Cells {
			if c, ok := b.cells.Get(cid); ok {
				c.Piece = NoPiece
			}
		}
		b.pieces.Del(p.ID)
	}

	return len(landed) > 0
}

// LowestPiece returns the piece that owns the lowest cell on the board. Ties go to the
// piece with the smaller id.
func (b *Board) LowestPiece() (PieceID, bool) {
	lowest := NoPiece
	lowestY := math.MaxInt

	for _, id := range b.pieceIDs() {
		p, _ := b.pieces.Get(id)
		for _, cid := range p.Cells {
			c, ok := b.cells.Get(cid)
			if !ok {
				continue
			}
			if c.Pos.Y < lowestY {
				lowestY = c.Pos.Y
				lowest = id
			}
		}
	}

	return lowest, lowest != NoPiece
}
