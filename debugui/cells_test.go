package debugui_test

import (
	"testing"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/debugui"
	"github.com/plus3/yetrix/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellRows(t *testing.T) {
	b := board.New()
	_, ok := b.SpawnPiece(board.Long, geom.Coord{X: 3, Y: 10})
	require.True(t, ok)

	rows := debugui.Collect(b)
	require.Len(t, rows, 4)
	assert.Equal(t, "0 "+board.Long.String(), rows[0].Piece)

	t.Run("filter", func(t *testing.T) {
		assert.Len(t, debugui.FilterCells(rows, ""), 4)
		assert.Len(t, debugui.FilterCells(rows, "(5,10)"), 1)
		assert.Empty(t, debugui.FilterCells(rows, "frozen"))
	})

	t.Run("sort", func(t *testing.T) {
		debugui.SortCells(rows, 1, false)
		assert.Equal(t, 6, rows[0].X)
		assert.Equal(t, 3, rows[3].X)

		debugui.SortCells(rows, 0, true)
		assert.Equal(t, board.CellID(0), rows[0].ID)
	})
}

func TestFrameHistory(t *testing.T) {
	h := debugui.NewFrameHistory(4)
	assert.Zero(t, h.Average())

	h.Add(0.010)
	h.Add(0.020)
	assert.InDelta(t, 15, h.Average(), 1e-4)

	for range 4 {
		h.Add(0.005)
	}
	assert.InDelta(t, 5, h.Average(), 1e-4)
}

func TestNoSelection(t *testing.T) {
	b := board.New()
	_, ok := b.SpawnPiece(board.Box, geom.Coord{X: 3, Y: 10})
	require.True(t, ok)

	_, ok = debugui.NewCellBrowser(b, 10).Selected()
	assert.False(t, ok, "cell 0 exists but nothing was clicked")
}
