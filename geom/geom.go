// Package geom holds the integer grid math shared by the board and the controller.
package geom

import "cmp"

// Coord is a grid position. Y grows upward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions used by the controller.
var (
	Left  = Coord{X: -1, Y: 0}
	Right = Coord{X: 1, Y: 0}
	Down  = Coord{X: 0, Y: -1}
	Up    = Coord{X: 0, Y: 1}
)

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Less orders coordinates row by row: Y first, then X.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Compare is Less in the three-way form expected by slices.SortFunc.
func Compare(a, b Coord) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Angle is a clockwise rotation in quarter turns.
type Angle int

const (
	R0 Angle = iota
	R90
	R180
	R270
)

// Degrees returns the angle in degrees.
func (a Angle) Degrees() int {
	return int(a) * 90
}

// Rotate turns c clockwise around the origin by the given angle.
func Rotate(angle Angle, c Coord) Coord {
	for range int(angle) & 3 {
		c = Coord{X: c.Y, Y: -c.X}
	}
	return c
}
