package view

import (
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/geom"
)

// Vec is a point in world units. Y grows upward; Depth points toward the viewer.
type Vec struct {
	X, Y, Depth float64
}

func (v Vec) lerp(to Vec, t float64) Vec {
	return Vec{
		X:     v.X + (to.X-v.X)*t,
		Y:     v.Y + (to.Y-v.Y)*t,
		Depth: v.Depth + (to.Depth-v.Depth)*t,
	}
}

// WorldPos maps a board position to world units.
func WorldPos(c geom.Coord, blockSize float64) Vec {
	return Vec{X: float64(c.X) * blockSize, Y: float64(c.Y) * blockSize}
}

// Actor is the visual stand-in of one cell.
type Actor struct {
	ID   board.CellID
	Cell geom.Coord

	from, to Vec
	elapsed  float64
	duration float64

	// arcHeight lifts the actor toward the viewer and back while it tweens.
	arcHeight float64

	destroying bool
	fadeLeft   float64
	fadeTotal  float64
}

// Pos returns the current world position.
func (a *Actor) Pos() Vec {
	t := a.progress()
	p := a.from.lerp(a.to, t)
	if a.arcHeight != 0 {
		// up during the first half, back during the second
		if t < 0.5 {
			p.Depth += a.arcHeight * t / 0.5
		} else {
			p.Depth += a.arcHeight * (1 - (t-0.5)/0.5)
		}
	}
	return p
}

// Moving reports whether a tween is in progress.
func (a *Actor) Moving() bool { return a.elapsed < a.duration }

// Destroying reports whether the cell is blowing up.
func (a *Actor) Destroying() bool { return a.destroying }

// Alpha is 1 for a live cell and falls to 0 while it is destroyed.
func (a *Actor) Alpha() float64 {
	if !a.destroying {
		return 1
	}
	if a.fadeTotal <= 0 {
		return 0
	}
	return a.fadeLeft / a.fadeTotal
}

func (a *Actor) progress() float64 {
	if a.duration <= 0 || a.elapsed >= a.duration {
		return 1
	}
	return a.elapsed / a.duration
}

func (a *Actor) snap(to Vec) {
	a.from, a.to = to, to
	a.elapsed, a.duration = 0, 0
	a.arcHeight = 0
}

func (a *Actor) tween(to Vec, duration, arc float64) {
	if duration <= 0 {
		a.snap(to)
		return
	}
	a.from = a.Pos()
	a.to = to
	a.elapsed = 0
	a.duration = duration
	a.arcHeight = arc
}

func (a *Actor) update(dt float64) {
	if a.elapsed < a.duration {
		a.elapsed = min(a.elapsed+dt, a.duration)
		if a.elapsed >= a.duration {
			a.arcHeight = 0
		}
	}
	if a.destroying {
		a.fadeLeft = max(a.fadeLeft-dt, 0)
	}
}
