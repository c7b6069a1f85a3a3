package board

import (
	"cmp"
	"math"
	"slices"

	"github.com/plus3/yetrix/geom"
)

// aliveGrid indexes alive cells by position. When a position is shared the lowest id wins,
// the same tie rule as cellAt.
func (b *Board) aliveGrid() map[geom.Coord]*Cell {
	grid := make(map[geom.Coord]*Cell, b.cells.Len())
	b.cells.ForEach(func(_ CellID, c *Cell) bool {
		if !c.Alive() {
			return true
		}
		if prev, ok := grid[c.Pos]; !ok || c.ID < prev.ID {
			grid[c.Pos] = c
		}
		return true
	})
	return grid
}

// FullRows returns, bottom up, every row below the check height whose playable columns are all
// held by alive frozen cells. Cells of falling pieces never complete a row.
func (b *Board) FullRows() []int {
	grid := b.aliveGrid()

	var rows []int
	for y := 1; y < b.checkHeight; y++ {
		full := true
		for x := 1; x < b.rightBorderX; x++ {
			c, ok := grid[geom.Coord{X: x, Y: y}]
			if !ok || !c.Frozen() {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// DestroyRows starts the destroy delay on every alive frozen cell in rows. The cells stop
// occupying their positions at once and leave the registry once TickDestroy has run past
// the delay. It returns the affected cells in id order.
func (b *Board) DestroyRows(rows []int) []CellID {
	if len(rows) == 0 {
		return nil
	}

	var destroyed []CellID
	for _, id := range b.cellIDs() {
		c, _ := b.cells.Get(id)
		if !c.Alive() || !c.Frozen() || !slices.Contains(rows, c.Pos.Y) {
			continue
		}
		c.startDestroy(b.destroyDelay)
		destroyed = append(destroyed, id)
		b.listener.CellDestroying(id)
	}
	return destroyed
}

// FallPositions computes where the frozen stack settles once rows are gone. Every alive frozen
// cell outside rows moves down by the number of rows strictly below it, column by column. A
// cell of a falling piece in the way holds the cell above it, and everything stacked on
// that cell, in place. Cells that keep their position are left out of the result, as are
// cells inside rows.
func (b *Board) FallPositions(rows []int) map[CellID]geom.Coord {
	positions := make(map[CellID]geom.Coord)
	if len(rows) == 0 {
		return positions
	}

	columns := make(map[int][]*Cell)
	held := make(map[geom.Coord]bool)
	b.cells.ForEach(func(_ CellID, c *Cell) bool {
		switch {
		case !c.Alive():
		case !c.Frozen():
			held[c.Pos] = true
		case !slices.Contains(rows, c.Pos.Y):
			columns[c.Pos.X] = append(columns[c.Pos.X], c)
		}
		return true
	})

	for x, cells := range columns {
		slices.SortFunc(cells, func(a, b *Cell) int { return cmp.Compare(a.Pos.Y, b.Pos.Y) })

		floor := math.MinInt
		for _, c := range cells {
			below := 0
			for _, y := range rows {
				if y < c.Pos.Y {
					below++
				}
			}

			target := c.Pos.Y - below
			for y := c.Pos.Y - 1; y >= target; y-- {
				if held[geom.Coord{X: x, Y: y}] {
					target = y + 1
					break
				}
			}
			target = max(target, floor)
			floor = target + 1

			if target != c.Pos.Y {
				positions[c.ID] = geom.Coord{X: x, Y: target}
			}
		}
	}
	return positions
}

// TickDestroy advances the destroy delay of every destroying cell by dt and removes the cells
// whose delay ran out. Removed ids are returned in ascending order.
func (b *Board) TickDestroy(dt float64) []CellID {
	var removed []CellID
	b.cells.ForEach(func(id CellID, c *Cell) bool {
		if c.State != CellAlive && c.tickDestroy(dt) {
			removed = append(removed, id)
		}
		return true
	})
	slices.Sort(removed)

	for _, id := range removed {
		b.cells.Del(id)
		b.listener.CellRemoved(id)
	}
	return removed
}
