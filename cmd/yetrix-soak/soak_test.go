package main

import (
	"bytes"
	"sync/atomic"
	"testing"

	"github.com/plus3/yetrix/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayGame(t *testing.T) {
	cfg := config.Default()

	a, err := playGame(cfg, 11, 5000, 0.2)
	require.NoError(t, err)
	b, err := playGame(cfg, 11, 5000, 0.2)
	require.NoError(t, err)

	assert.LessOrEqual(t, a.Ticks, uint64(5000))
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Ticks, b.Ticks)
	assert.Equal(t, a.RowsCleared, b.RowsCleared)
	assert.NotEmpty(t, a.Systems)

	t.Run("idle player stacks up to a game over", func(t *testing.T) {
		res, err := playGame(cfg, 3, 200000, 0)
		require.NoError(t, err)
		assert.True(t, res.GameOver)
		assert.Less(t, res.Ticks, uint64(200000))
	})
}

func TestSoak(t *testing.T) {
	var done atomic.Int32
	results, err := soak(config.Default(), 6, 3, 2000, 0.1, 100, func() { done.Add(1) })
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, int32(6), done.Load())

	r := &Report{Games: 6, Workers: 3, MaxTicks: 2000, IntentRate: 0.1, BaseSeed: 100}
	r.Collect(results)
	for i, res := range r.Results {
		assert.Equal(t, uint64(100+i), res.Seed)
	}
	assert.NotEmpty(t, r.Systems)

	var out bytes.Buffer
	require.NoError(t, r.Generate(&out))
	assert.Contains(t, out.String(), "# Yetrix Soak Report")
	assert.Contains(t, out.String(), "phaseSystem")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{40, 10, 30, 20})
	assert.InDelta(t, 25, s.Mean, 1e-9)
	assert.InDelta(t, 12.909944, s.StdDev, 1e-6)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Equal(t, 20.0, s.P50)
	assert.Less(t, s.CILow, s.Mean)
	assert.Greater(t, s.CIHigh, s.Mean)
	assert.InDelta(t, s.Mean-s.CILow, s.CIHigh-s.Mean, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]float64{7})
	assert.Equal(t, 7.0, one.CILow)
	assert.Equal(t, 7.0, one.P99)
}
