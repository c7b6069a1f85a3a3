package game

import (
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/geom"
	"github.com/plus3/yetrix/sched"
)

// timerSystem fires the delayed callbacks that are due.
type timerSystem struct {
	c *Controller
}

func (s *timerSystem) Execute(frame *sched.Frame) {
	s.c.timers.Fire(frame.Time)
}

// lightSystem turns the sun toward its target angle.
type lightSystem struct {
	c *Controller
}

func (s *lightSystem) Execute(frame *sched.Frame) {
	st := &s.c.st
	if st.lightTimer <= 0 {
		return
	}

	st.lightTimer = max(st.lightTimer-frame.DeltaTime, 0)

	progress := 1.0
	if d := s.c.cfg.Light.Duration; d > 0 {
		progress = 1 - st.lightTimer/d
	}
	st.lightCurrent = st.lightStart + (st.lightEnd-st.lightStart)*progress
	s.c.presenter.LightAngle(st.lightCurrent)
}

// phaseSystem counts down the phase timer and performs the transitions.
type phaseSystem struct {
	c *Controller
}

func (s *phaseSystem) Execute(frame *sched.Frame) {
	c := s.c
	st := &c.st

	if st.phase == Rotating {
		c.tickRotation(frame.DeltaTime)
		return
	}

	st.timer -= frame.DeltaTime
	if st.timer > 0 {
		return
	}

	switch st.phase {
	case Still:
		st.phase = Dropping
		st.timer = st.dropDuration
		c.startDropping(frame)
	case Dropping:
		st.phase = Still
		st.timer = st.stillDuration
		c.stopDropping()
	case Destroying:
		st.phase = Still
		st.timer = st.stillDuration
		c.stopDestroying(frame)
	}
}

// inputSystem drains the pending intents while the board is still.
type inputSystem struct {
	c *Controller
}

func (s *inputSystem) Execute(*sched.Frame) {
	c := s.c
	st := &c.st
	if st.phase != Still {
		return
	}

	c.drainMoves(&st.pendingLeft, geom.Left, SoundMoveLeft)
	c.drainMoves(&st.pendingRight, geom.Right, SoundMoveRight)

	for st.pendingRotate > 0 {
		st.pendingRotate--

		id, ok := c.board.LowestPiece()
		if !ok {
			continue
		}
		if p, _ := c.board.Piece(id); p.Shape == board.Box {
			continue
		}

		positions := c.board.RotatedPositions(id)
		if len(positions) == 0 {
			st.pendingRotate = 0
			break
		}

		c.board.ApplyPositions(positions, c.cfg.Simulation.RotateDuration)
		c.presenter.PlaySound(SoundClick)
		c.startRotation(id)
		break
	}
}

// drainMoves attempts pending moves of the lowest piece. The first blocked move discards
// the rest.
func (c *Controller) drainMoves(pending *int, dir geom.Coord, sound string) {
	for *pending > 0 {
		*pending--
		if !c.board.MoveLowestPiece(dir, 0) {
			*pending = 0
			return
		}
		c.presenter.PlaySound(sound)
	}
}

// cleanupSystem removes blown up cells once their delay has passed.
type cleanupSystem struct {
	c *Controller
}

func (s *cleanupSystem) Execute(frame *sched.Frame) {
	s.c.board.TickDestroy(frame.DeltaTime)
}

func (c *Controller) startRotation(id board.PieceID) {
	st := &c.st
	st.phase = Rotating
	st.rotatePiece = id
	st.rotateTimer = c.cfg.Simulation.RotateDuration
	st.rotateStage = StageBreak
	c.presenter.RotationStage(id, StageBreak)
}

func (c *Controller) tickRotation(dt float64) {
	st := &c.st
	st.rotateTimer -= dt

	if st.rotateTimer <= 0 {
		id := st.rotatePiece
		st.phase = Still
		st.rotatePiece = board.NoPiece
		st.rotateTimer = 0
		st.rotateStage = StageNone
		c.presenter.RotationStage(id, StageNone)
		return
	}

	progress := 1 - st.rotateTimer/c.cfg.Simulation.RotateDuration
	if stage := stageAt(progress); stage != st.rotateStage {
		st.rotateStage = stage
		c.presenter.RotationStage(st.rotatePiece, stage)
	}
}
