package sched

// Commands buffers work that must not run while systems are still executing, such as saving a
// state that later systems of the same tick would change. Flush runs it after the last system.
type Commands struct {
	defers []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	name string
	fn   func()
}

// DeferOnce queues fn under name unless a function with the same name is already queued.
// Queued functions run in the order they were deferred.
func (c *Commands) DeferOnce(name string, fn func()) {
	for _, d := range c.defers {
		if d.name == name {
			return
		}
	}
	c.defers = append(c.defers, deferCommand{name: name, fn: fn})
}

// Len returns the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs every queued function, resetting the buffer state. Functions deferred while
// flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i].fn()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
