package game

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/sched"
)

// saveDocument is the JSON stored in the slot.
type saveDocument struct {
	BlockScene          board.Document `json:"blockScene"`
	Score               int            `json:"score"`
	HiScore             int            `json:"hiscore"`
	WorstConditionScore int            `json:"worstConditionScore,omitempty"`
}

// Save writes the board, score, hi score and worst condition score to the slot.
func (c *Controller) Save(ctx context.Context) error {
	doc := saveDocument{
		BlockScene:          c.board.Save(),
		Score:               c.st.score,
		HiScore:             c.hiScore,
		WorstConditionScore: c.worstCondition,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := c.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Load restores a saved game. On error the controller is left untouched and the caller can
// go on with a fresh game; store.ErrNotFound in the chain means nothing was saved yet.
// Damaged board entries are skipped and logged rather than failing the load.
func (c *Controller) Load(ctx context.Context) error {
	data, err := c.slot.Read(ctx)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	var doc saveDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode save: %w", err)
	}

	c.ResetGame()

	if dropped := c.board.Load(doc.BlockScene); dropped > 0 {
		c.log.Warn("save had damaged entries", "dropped", dropped)
	}
	c.st.score = max(doc.Score, 0)
	c.hiScore = max(doc.HiScore, c.st.score, 0)
	c.worstCondition = max(doc.WorstConditionScore, 0)

	c.updateSpeed()
	c.updateCondition()
	c.presenter.ScoreChanged(c.st.score, c.hiScore)
	return nil
}

// requestSave saves once after the systems of the current tick have run.
func (c *Controller) requestSave(frame *sched.Frame) {
	frame.Commands.DeferOnce("save", func() {
		if err := c.Save(context.Background()); err != nil {
			c.log.Error("autosave failed", "err", err)
		}
	})
}
