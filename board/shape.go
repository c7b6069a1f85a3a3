package board

import (
	"fmt"

	"github.com/plus3/yetrix/geom"
)

// Shape is one of the seven tetromino templates.
type Shape int

const (
	Long Shape = iota
	LeftBoot
	RightBoot
	Box
	LeftGun
	RightGun
	Hat

	ShapeCount = 7
)

var shapeNames = [ShapeCount]string{
	"long", "left-boot", "right-boot", "box", "left-gun", "right-gun", "hat",
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Valid reports whether s names one of the seven templates.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// shapeTemplates are 4x2 masks indexed [row][column]. Row 0 is the top row.
var shapeTemplates = [ShapeCount][2][4]bool{
	Long: {
		{true, true, true, true},
		{false, false, false, false},
	},
	LeftBoot: {
		{true, false, false, false},
		{true, true, true, false},
	},
	RightBoot: {
		{false, false, true, false},
		{true, true, true, false},
	},
	Box: {
		{true, true, false, false},
		{true, true, false, false},
	},
	LeftGun: {
		{false, true, true, false},
		{true, true, false, false},
	},
	RightGun: {
		{true, true, false, false},
		{false, true, true, false},
	},
	Hat: {
		{false, true, false, false},
		{true, true, true, false},
	},
}

var shapeOffsets = buildShapeOffsets()

// buildShapeOffsets walks every template column by column so cell order matches spawn order.
func buildShapeOffsets() [ShapeCount][]geom.Coord {
	var offsets [ShapeCount][]geom.Coord
	for shape, template := range shapeTemplates {
		for x := range len(template[0]) {
			for y := range len(template) {
				if template[y][x] {
					offsets[shape] = append(offsets[shape], geom.Coord{X: x, Y: -y})
				}
			}
		}
	}
	return offsets
}

// Offsets returns the cell positions of s relative to its spawn anchor (the top-left corner).
func (s Shape) Offsets() []geom.Coord {
	if !s.Valid() {
		return nil
	}
	out := make([]geom.Coord, len(shapeOffsets[s]))
	copy(out, shapeOffsets[s])
	return out
}

// Piece is a falling figure: a shape plus the cells it still controls.
type Piece struct {
	ID    PieceID
	Shape Shape
	Cells []CellID
}

func (p *Piece) clone() Piece {
	return Piece{
		ID:    p.ID,
		Shape: p.Shape,
		Cells: append([]CellID(nil), p.Cells...),
	}
}
