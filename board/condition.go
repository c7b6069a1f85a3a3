package board

import "github.com/plus3/yetrix/geom"

// Weights of the condition score.
const (
	conditionHeightWeight = 4
	conditionSpreadWeight = 2
	conditionHoleWeight   = 6
	conditionFrozenWeight = 1
)

// ConditionInfo describes how messy the landed stack is. Falling pieces are ignored.
type ConditionInfo struct {
	// Heights holds the row of the topmost frozen cell per playable column, 0 for an empty
	// column. Index 0 is column 1.
	Heights   []int
	MaxHeight int
	MinHeight int
	// Holes counts empty positions below the top of their column.
	Holes  int
	Frozen int
}

// Score folds the info into one number. Higher is worse.
func (ci ConditionInfo) Score() int {
	return ci.MaxHeight*conditionHeightWeight +
		(ci.MaxHeight-ci.MinHeight)*conditionSpreadWeight +
		ci.Holes*conditionHoleWeight +
		ci.Frozen*conditionFrozenWeight
}

// Condition analyses the frozen stack. It does not modify the board.
func (b *Board) Condition() ConditionInfo {
	columns := max(b.rightBorderX-1, 0)
	info := ConditionInfo{Heights: make([]int, columns)}

	frozen := make(map[geom.Coord]bool)
	b.cells.ForEach(func(_ CellID, c *Cell) bool {
		if !c.Alive() || !c.Frozen() {
			return true
		}
		if c.Pos.X < 1 || c.Pos.X >= b.rightBorderX || c.Pos.Y < 1 {
			return true
		}
		if !frozen[c.Pos] {
			frozen[c.Pos] = true
			info.Frozen++
		}
		col := c.Pos.X - 1
		info.Heights[col] = max(info.Heights[col], c.Pos.Y)
		return true
	})

	for i, h := range info.Heights {
		if i == 0 || h > info.MaxHeight {
			info.MaxHeight = h
		}
		if i == 0 || h < info.MinHeight {
			info.MinHeight = h
		}
		for y := 1; y < h; y++ {
			if !frozen[geom.Coord{X: i + 1, Y: y}] {
				info.Holes++
			}
		}
	}

	return info
}

// ConditionScore is Condition().Score().
func (b *Board) ConditionScore() int {
	return b.Condition().Score()
}
