package sched

import "container/heap"

type timer struct {
	at  float64
	seq uint64
	fn  func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Timers is a queue of one-shot callbacks on the simulation clock. It is not safe for
// concurrent use; poll it from the goroutine that advances the clock.
type Timers struct {
	queue timerHeap
	seq   uint64
}

// NewTimers returns an empty queue.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run on the first Fire at or after now+delay.
func (t *Timers) After(now, delay float64, fn func()) {
	t.seq++
	heap.Push(&t.queue, &timer{at: now + max(delay, 0), seq: t.seq, fn: fn})
}

// Fire runs every callback due at now, earliest first, ties in scheduling order. Callbacks
// scheduled from inside a callback wait for the next Fire. It returns the number run.
func (t *Timers) Fire(now float64) int {
	limit := t.seq
	fired := 0
	for len(t.queue) > 0 {
		next := t.queue[0]
		if next.at > now || next.seq > limit {
			break
		}
		heap.Pop(&t.queue)
		next.fn()
		fired++
	}
	return fired
}

// Clear drops every pending callback.
func (t *Timers) Clear() {
	clear(t.queue)
	t.queue = t.queue[:0]
}

// Len returns the number of pending callbacks.
func (t *Timers) Len() int {
	return len(t.queue)
}
