package sched

// Frame is handed to every system during one tick.
type Frame struct {
	// DeltaTime is the simulated time covered by this tick, in seconds.
	DeltaTime float64
	// Time is the simulation clock at the end of this tick.
	Time float64
	// Tick counts ticks from 1.
	Tick     uint64
	Commands *Commands
}

func newFrame(dt, now float64, tick uint64, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Time:      now,
		Tick:      tick,
		Commands:  commands,
	}
}
