package sched

// DefaultMaxSteps bounds the ticks run by one Advance call.
const DefaultMaxSteps = 25

// Stepper turns variable frame times into fixed ticks of a Scheduler.
type Stepper struct {
	sched *Scheduler
	step  float64
	accum float64

	// MaxSteps caps the ticks run per Advance. Time beyond the cap is dropped so a long stall
	// cannot snowball into ever longer catch-up frames. Zero or less disables the cap.
	MaxSteps int
}

// NewStepper runs sched in ticks of step seconds.
func NewStepper(sched *Scheduler, step float64) *Stepper {
	if step <= 0 {
		panic("sched: step must be positive")
	}
	return &Stepper{sched: sched, step: step, MaxSteps: DefaultMaxSteps}
}

// Step returns the tick length in seconds.
func (st *Stepper) Step() float64 { return st.step }

// Pending returns the accumulated time not yet simulated.
func (st *Stepper) Pending() float64 { return st.accum }

// Advance adds dt to the accumulator and runs as many whole ticks as fit. It returns the
// number of ticks run.
func (st *Stepper) Advance(dt float64) int {
	if dt > 0 {
		st.accum += dt
	}

	// Frame times rarely add up to exact multiples of step in floating point.
	eps := st.step * 1e-6

	steps := 0
	for st.accum+eps >= st.step {
		if st.MaxSteps > 0 && steps >= st.MaxSteps {
			st.accum = 0
			break
		}
		st.accum = max(st.accum-st.step, 0)
		st.sched.Once(st.step)
		steps++
	}
	return steps
}

// Reset discards the accumulated time.
func (st *Stepper) Reset() {
	st.accum = 0
}
