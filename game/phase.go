package game

import "fmt"

// Phase is the state of the drop machine.
type Phase uint8

const (
	// Still waits for the next drop and accepts player moves.
	Still Phase = iota
	// Dropping lets the falling pieces settle one row, or all the way on a quick drop.
	Dropping
	// Destroying waits for cleared rows to blow up before the stack falls into place.
	Destroying
	// Rotating plays the rotation animation. The drop timer is paused meanwhile.
	Rotating
)

func (p Phase) String() string {
	switch p {
	case Still:
		return "still"
	case Dropping:
		return "dropping"
	case Destroying:
		return "destroying"
	case Rotating:
		return "rotating"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// RotationStage is the step of the three part rotation animation.
type RotationStage uint8

const (
	StageNone RotationStage = iota
	StageBreak
	StageMove
	StageAssemble
)

func (s RotationStage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageBreak:
		return "break"
	case StageMove:
		return "move"
	case StageAssemble:
		return "assemble"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// stageAt maps the elapsed share of the rotation to its stage.
func stageAt(progress float64) RotationStage {
	switch {
	case progress < 1.0/3:
		return StageBreak
	case progress < 2.0/3:
		return StageMove
	default:
		return StageAssemble
	}
}
