package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/yetrix/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.01, cfg.Simulation.Interval)
	assert.Equal(t, 0.95, cfg.Simulation.SpeedUpCoeff)
	assert.Equal(t, 11, cfg.Board.RightBorderX)
	assert.Equal(t, 20, cfg.Board.CheckHeight)
	assert.Equal(t, []int{10, 25, 40, 60}, cfg.Score.PerCombo)
	assert.Equal(t, 5, cfg.Board.SpawnX)
	assert.Equal(t, 25, cfg.Board.SpawnY)
}

func TestParse(t *testing.T) {
	t.Run("partial document keeps defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
simulation:
  still_duration: 0.25
score:
  per_combo: [1, 2]
save:
  backend: memory
seed: 99
`))
		require.NoError(t, err)
		assert.Equal(t, 0.25, cfg.Simulation.StillDuration)
		assert.Equal(t, 0.1, cfg.Simulation.DropDuration)
		assert.Equal(t, []int{1, 2}, cfg.Score.PerCombo)
		assert.Equal(t, "memory", cfg.Save.Backend)
		assert.Equal(t, uint64(99), cfg.Seed)
	})

	t.Run("empty document is the default", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := config.Parse([]byte("simulation:\n  tempo: 3\n"))
		assert.Error(t, err)
	})

	t.Run("invalid values wrap ErrInvalid", func(t *testing.T) {
		_, err := config.Parse([]byte(`
simulation:
  interval: 0
  speed_up_coeff: 1.5
save:
  backend: cloud
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalid)
		assert.Contains(t, err.Error(), "simulation.interval")
		assert.Contains(t, err.Error(), "speed_up_coeff")
		assert.Contains(t, err.Error(), "cloud")
	})

	t.Run("file backends need a path", func(t *testing.T) {
		cfg := config.Default()
		cfg.Save.Path = ""
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

		cfg.Save.Backend = "memory"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yetrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  min_pieces: 2\n"), 0o644))

	t.Run("explicit path", func(t *testing.T) {
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Board.MinPieces)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(config.EnvPath, path)
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Board.MinPieces)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(config.EnvPath, "")
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
