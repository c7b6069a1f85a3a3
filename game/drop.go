package game

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/geom"
	"github.com/plus3/yetrix/sched"
)

// startDropping runs when the still wait ends. Landed pieces freeze first; completed rows
// switch to Destroying, otherwise every falling piece moves down. A piece is spawned last
// when fewer than the minimum are falling, and a blocked spawn ends the game.
func (c *Controller) startDropping(frame *sched.Frame) {
	if c.board.DeconstructPieces() {
		c.updateCondition()
	}

	if rows := c.board.FullRows(); len(rows) > 0 {
		c.clearRows(frame, rows)
	} else {
		c.dropPieces()
	}

	if c.board.PieceCount() >= c.cfg.Board.MinPieces {
		return
	}
	anchor := geom.Coord{X: c.cfg.Board.SpawnX, Y: c.cfg.Board.SpawnY}
	id, ok := c.board.SpawnRandomPiece(anchor)
	if !ok {
		c.gameOver(frame)
		return
	}
	c.log.Debug("piece spawned", "piece", id)
}

// dropPieces moves each falling piece down one row, lowest piece first. Under a quick drop
// the lowest piece falls as far as it can instead.
func (c *Controller) dropPieces() {
	st := &c.st
	lowest, _ := c.board.LowestPiece()

	for _, id := range c.fallOrder() {
		distance, ok := c.board.PieceMoveDistance(id, geom.Down)
		if !ok {
			continue
		}
		rows := 1
		if id == lowest && st.quickDrop {
			rows = distance
			st.quickDropApplied = true
		}
		c.board.DropPiece(id, rows, st.dropDuration)
	}
}

// fallOrder sorts the falling pieces bottom up so a piece never waits on one below it that
// is about to move.
func (c *Controller) fallOrder() []board.PieceID {
	pieces := c.board.Pieces()
	bottom := make(map[board.PieceID]int, len(pieces))
	for _, p := range pieces {
		y := 0
		for i, cid := range p.Cells {
			cell, _ := c.board.Cell(cid)
			if i == 0 || cell.Pos.Y < y {
				y = cell.Pos.Y
			}
		}
		bottom[p.ID] = y
	}

	ids := make([]board.PieceID, 0, len(pieces))
	for _, p := range pieces {
		ids = append(ids, p.ID)
	}
	slices.SortStableFunc(ids, func(a, b board.PieceID) int {
		return cmp.Compare(bottom[a], bottom[b])
	})
	return ids
}

// stopDropping ends the drop phase. A quick drop requested after the phase started still
// takes the lowest piece all the way down.
func (c *Controller) stopDropping() {
	st := &c.st
	if st.quickDrop && !st.quickDropApplied {
		if id, ok := c.board.LowestPiece(); ok {
			if distance, ok := c.board.PieceMoveDistance(id, geom.Down); ok {
				c.board.DropPiece(id, distance, 0)
			}
		}
	}
	st.quickDrop = false
	st.quickDropApplied = false
}

// clearRows starts blowing up rows and scores them.
func (c *Controller) clearRows(frame *sched.Frame, rows []int) {
	st := &c.st

	st.cleared = slices.Clone(rows)
	fall := c.board.FallPositions(rows)
	c.board.DestroyRows(rows)

	st.phase = Destroying
	st.timer = c.cfg.Simulation.DestroyDuration
	c.presenter.RowsCleared(slices.Clone(rows), fall, st.timer)

	if len(rows) == 1 {
		c.playRandom(soundOneRow, 4)
	} else {
		c.presenter.PlaySound("bah" + strconv.Itoa(len(rows)) + "0")
	}

	c.addScore(frame, len(rows))

	st.lightStart = st.lightCurrent
	st.lightEnd += c.cfg.Light.PerClear
	st.lightTimer = c.cfg.Light.Duration
	if st.lightTimer <= 0 {
		st.lightCurrent = st.lightEnd
		c.presenter.LightAngle(st.lightCurrent)
	}

	c.log.Debug("rows cleared", "rows", rows, "score", st.score)
}

// stopDestroying settles the stack above the cleared rows and saves. The landing spots are
// computed again here because a piece may have spawned into the stack's path since.
func (c *Controller) stopDestroying(frame *sched.Frame) {
	st := &c.st
	if fall := c.board.FallPositions(st.cleared); len(fall) > 0 {
		c.board.ApplyPositions(fall, 0)
	}
	st.cleared = nil

	c.updateCondition()
	c.requestSave(frame)
}

// ComboScore returns the points for clearing rows at once. Counts beyond the table use its
// last entry; zero or fewer rows score nothing.
func ComboScore(table []int, rows int) int {
	if rows <= 0 || len(table) == 0 {
		return 0
	}
	return table[min(rows, len(table))-1]
}

func (c *Controller) addScore(frame *sched.Frame, rows int) {
	st := &c.st
	milestone := c.cfg.Score.Milestone

	before := st.score
	st.score += ComboScore(c.cfg.Score.PerCombo, rows)

	if milestone > 0 && st.score/milestone > before/milestone {
		c.timers.After(frame.Time, c.cfg.Score.MilestoneDelay, func() {
			c.presenter.PlaySound(SoundYeah)
		})
	}

	c.updateSpeed()
	c.presenter.ScoreChanged(st.score, c.hiScore)
}

func (c *Controller) updateCondition() {
	c.condition = c.board.ConditionScore()
	c.worstCondition = max(c.worstCondition, c.condition)
	c.presenter.ConditionChanged(c.condition, c.worstCondition)
}

func (c *Controller) gameOver(frame *sched.Frame) {
	score := c.st.score
	c.hiScore = max(c.hiScore, score)
	c.gamesOver++

	c.log.Info("game over", "score", score, "hiscore", c.hiScore, "games", c.gamesOver)

	c.ResetGame()
	c.requestSave(frame)
	c.presenter.PlaySound(SoundGameOver)
	c.presenter.GameOver(score, c.hiScore)
}
