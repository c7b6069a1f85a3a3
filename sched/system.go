package sched

// System is one stage of a simulation tick. Systems keep their own state between frames and
// run in registration order.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System. It reports as "SystemFunc" in stats; wrap it in
// a named type when the name matters.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }
