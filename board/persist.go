package board

import (
	"slices"

	"github.com/plus3/yetrix/geom"
)

// maxLoadedID is the largest id Load accepts. Counters resumed from a save stay far below
// NoPiece and the wrap point of the cell counter.
const maxLoadedID = 1 << 62

// Document is the serialized form of a board. Map keys encode as JSON object keys.
type Document struct {
	Blocks  map[CellID]CellDoc   `json:"blocks"`
	Figures map[PieceID]PieceDoc `json:"figures"`
}

// CellDoc is one alive cell. Figure is absent for frozen cells.
type CellDoc struct {
	Pos    geom.Coord `json:"pos"`
	Figure *PieceID   `json:"figure,omitempty"`
}

// PieceDoc is one falling piece. Type is kept as a plain int so out-of-range values from a
// damaged save can be detected on load.
type PieceDoc struct {
	Type   int      `json:"type"`
	Blocks []CellID `json:"blocks"`
}

// Save captures every alive cell and every piece.
func (b *Board) Save() Document {
	doc := Document{
		Blocks:  make(map[CellID]CellDoc, b.cells.Len()),
		Figures: make(map[PieceID]PieceDoc, b.pieces.Len()),
	}

	b.cells.ForEach(func(id CellID, c *Cell) bool {
		if !c.Alive() {
			return true
		}
		cd := CellDoc{Pos: c.Pos}
		if !c.Frozen() {
			owner := c.Piece
			cd.Figure = &owner
		}
		doc.Blocks[id] = cd
		return true
	})

	b.pieces.ForEach(func(id PieceID, p *Piece) bool {
		doc.Figures[id] = PieceDoc{
			Type:   int(p.Shape),
			Blocks: slices.Clone(p.Cells),
		}
		return true
	})

	return doc
}

// Load replaces the board contents with doc and reports how many entries were discarded.
//
// A save may be stale or damaged, so Load never trusts it:
//   - a cell on an already taken position is dropped (the lower id keeps the spot);
//   - a piece with an unknown shape is dropped;
//   - a piece reference to a missing cell, to a cell that names another owner, or to a cell
//     already claimed is skipped;
//   - a cell whose owner does not claim it becomes frozen;
//   - a piece left without cells is dropped;
//   - a cell or piece id above 1<<62 is dropped.
//
// ID counters continue above the highest accepted id in doc, dropped entries included.
func (b *Board) Load(doc Document) int {
	b.Reset()

	dropped := 0
	taken := make(map[geom.Coord]bool, len(doc.Blocks))
	claimedBy := make(map[CellID]PieceID, len(doc.Blocks))

	cellIDs := make([]CellID, 0, len(doc.Blocks))
	for id := range doc.Blocks {
		cellIDs = append(cellIDs, id)
	}
	slices.Sort(cellIDs)

	var maxCell CellID
	for _, id := range cellIDs {
		if id > maxLoadedID {
			b.log.Warn("load skipped cell with out of range id", "cell", id)
			dropped++
			continue
		}
		maxCell = max(maxCell, id+1)

		cd := doc.Blocks[id]
		if taken[cd.Pos] {
			b.log.Warn("load skipped overlapping cell", "cell", id, "pos", cd.Pos)
			dropped++
			continue
		}
		taken[cd.Pos] = true

		owner := NoPiece
		if cd.Figure != nil {
			owner = *cd.Figure
		}
		claimedBy[id] = owner
		b.cells.Put(id, &Cell{ID: id, Pos: cd.Pos, Piece: NoPiece})
	}

	pieceIDs := make([]PieceID, 0, len(doc.Figures))
	for id := range doc.Figures {
		pieceIDs = append(pieceIDs, id)
	}
	slices.Sort(pieceIDs)

	var maxPiece PieceID
	for _, id := range pieceIDs {
		if id > maxLoadedID {
			b.log.Warn("load skipped piece with out of range id", "piece", id)
			dropped++
			continue
		}
		maxPiece = max(maxPiece, id+1)

		pd := doc.Figures[id]
		shape := Shape(pd.Type)
		if !shape.Valid() {
			b.log.Warn("load skipped piece with unknown shape", "piece", id, "type", pd.Type)
			dropped++
			continue
		}

		piece := &Piece{ID: id, Shape: shape}
		for _, cid := range pd.Blocks {
			c, ok := b.cells.Get(cid)
			if !ok || claimedBy[cid] != id || !c.Frozen() {
				b.log.Warn("load skipped dangling cell reference", "piece", id, "cell", cid)
				dropped++
				continue
			}
			c.Piece = id
			piece.Cells = append(piece.Cells, cid)
		}

		if len(piece.Cells) == 0 {
			dropped++
			continue
		}
		b.pieces.Put(id, piece)
	}

	b.nextCell = max(b.nextCell, maxCell)
	b.nextPiece = max(b.nextPiece, maxPiece)

	for _, id := range b.cellIDs() {
		c, _ := b.cells.Get(id)
		b.listener.CellCreated(id, c.Pos)
	}

	return dropped
}
