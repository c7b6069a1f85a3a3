package game

import (
	"fmt"
	"strconv"
)

// Intent is a discrete player request.
type Intent uint8

const (
	IntentLeft Intent = iota
	IntentRight
	IntentRotate
	IntentDrop
	IntentDown
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentRotate:
		return "rotate"
	case IntentDrop:
		return "drop"
	case IntentDown:
		return "down"
	default:
		return fmt.Sprintf("intent(%d)", uint8(i))
	}
}

// Apply dispatches an intent to the matching method.
func (c *Controller) Apply(i Intent) {
	switch i {
	case IntentLeft:
		c.Left()
	case IntentRight:
		c.Right()
	case IntentRotate:
		c.Rotate()
	case IntentDrop:
		c.Drop()
	case IntentDown:
		c.Down()
	default:
		c.log.Warn("unknown intent", "intent", i)
	}
}

// Left queues one step to the left. Steps are counted, not queued with payload.
func (c *Controller) Left() { c.st.pendingLeft++ }

// Right queues one step to the right.
func (c *Controller) Right() { c.st.pendingRight++ }

// Rotate queues one rotation of the lowest piece.
func (c *Controller) Rotate() { c.st.pendingRotate++ }

// Drop requests a quick drop of the lowest piece and ends the current phase wait.
func (c *Controller) Drop() {
	c.st.quickDrop = true
	c.st.timer = 0
	c.playRandom(soundQuickDrop, 3)
}

// Down ends the still wait early, dropping one row now. It does nothing outside Still.
func (c *Controller) Down() {
	if c.st.phase != Still {
		return
	}
	c.presenter.PlaySound(SoundClick)
	c.st.timer = 0
}

func (c *Controller) playRandom(prefix string, count int) bool {
	return c.presenter.PlaySound(prefix + strconv.Itoa(c.rng.IntN(count)))
}
