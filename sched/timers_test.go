package sched_test

import (
	"testing"

	"github.com/plus3/yetrix/sched"
	"github.com/stretchr/testify/assert"
)

func TestTimers(t *testing.T) {
	t.Run("fires due callbacks earliest first", func(t *testing.T) {
		timers := sched.NewTimers()
		var order []string
		timers.After(0, 1.0, func() { order = append(order, "late") })
		timers.After(0, 0.5, func() { order = append(order, "early") })
		timers.After(0, 0.5, func() { order = append(order, "early tie") })

		assert.Zero(t, timers.Fire(0.4))
		assert.Equal(t, 2, timers.Fire(0.5))
		assert.Equal(t, []string{"early", "early tie"}, order)
		assert.Equal(t, 1, timers.Len())

		assert.Zero(t, timers.Fire(0.99))

		assert.Equal(t, 1, timers.Fire(3))
		assert.Equal(t, []string{"early", "early tie", "late"}, order)
		assert.Zero(t, timers.Len())
	})

	t.Run("clear drops everything", func(t *testing.T) {
		timers := sched.NewTimers()
		fired := 0
		for i := range 5 {
			timers.After(0, float64(i), func() { fired++ })
		}
		timers.Clear()
		assert.Zero(t, timers.Fire(10))
		assert.Zero(t, fired)
		assert.Zero(t, timers.Len())
	})

	t.Run("callbacks scheduled while firing wait for the next poll", func(t *testing.T) {
		timers := sched.NewTimers()
		count := 0
		var again func()
		again = func() {
			count++
			timers.After(1, 0, again)
		}
		timers.After(0, 1, again)

		assert.Equal(t, 1, timers.Fire(1))
		assert.Equal(t, 1, timers.Fire(1))
		assert.Equal(t, 2, count)
	})
}
