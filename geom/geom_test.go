package geom

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordArithmetic(t *testing.T) {
	a := Coord{X: 3, Y: 7}
	b := Coord{X: -1, Y: 2}

	assert.Equal(t, Coord{X: 2, Y: 9}, a.Add(b))
	assert.Equal(t, Coord{X: 4, Y: 5}, a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestCoordOrdering(t *testing.T) {
	coords := []Coord{{X: 5, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 2}, {X: 9, Y: 1}}
	slices.SortFunc(coords, Compare)

	assert.Equal(t, []Coord{{X: 9, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 2}, {X: 1, Y: 3}}, coords)

	assert.True(t, Coord{X: 9, Y: 1}.Less(Coord{X: 0, Y: 2}))
	assert.True(t, Coord{X: 1, Y: 2}.Less(Coord{X: 2, Y: 2}))
	assert.False(t, Coord{X: 2, Y: 2}.Less(Coord{X: 2, Y: 2}))
}

func TestRotate(t *testing.T) {
	c := Coord{X: 1, Y: 0}

	tests := []struct {
		angle Angle
		want  Coord
	}{
		{R0, Coord{X: 1, Y: 0}},
		{R90, Coord{X: 0, Y: -1}},
		{R180, Coord{X: -1, Y: 0}},
		{R270, Coord{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rotate(tt.angle, c), "angle %d", tt.angle.Degrees())
	}

	// Four quarter turns bring any point back.
	p := Coord{X: 3, Y: -2}
	assert.Equal(t, p, Rotate(R90, Rotate(R90, Rotate(R90, Rotate(R90, p)))))
}
