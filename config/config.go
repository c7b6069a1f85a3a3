// Package config loads the game settings from YAML. Every field has a default, so a missing
// file or a partial one is fine.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "YETRIX_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Board      BoardConfig      `yaml:"board"`
	Score      ScoreConfig      `yaml:"score"`
	Light      LightConfig      `yaml:"light"`
	Save       SaveConfig       `yaml:"save"`
	View       ViewConfig       `yaml:"view"`
	Log        LogConfig        `yaml:"log"`

	// Seed feeds the shape generator. Zero picks a seed from the clock.
	Seed uint64 `yaml:"seed"`
}

// SimulationConfig holds the pacing of the phase machine, in seconds.
type SimulationConfig struct {
	Interval        float64 `yaml:"interval"`
	StillDuration   float64 `yaml:"still_duration"`
	DropDuration    float64 `yaml:"drop_duration"`
	DestroyDuration float64 `yaml:"destroy_duration"`
	RotateDuration  float64 `yaml:"rotate_duration"`
	SpeedUpCoeff    float64 `yaml:"speed_up_coeff"`
	MaxStepsPerCall int     `yaml:"max_steps_per_call"`
}

type BoardConfig struct {
	RightBorderX int     `yaml:"right_border_x"`
	CheckHeight  int     `yaml:"check_height"`
	DestroyDelay float64 `yaml:"destroy_delay"`
	SpawnX       int     `yaml:"spawn_x"`
	SpawnY       int     `yaml:"spawn_y"`
	MinPieces    int     `yaml:"min_pieces"`
}

type ScoreConfig struct {
	PerCombo []int `yaml:"per_combo"`
	// Milestone plays the cheer each time the score passes a multiple of it.
	Milestone      int     `yaml:"milestone"`
	MilestoneDelay float64 `yaml:"milestone_delay"`
}

// LightConfig drives the sun angle that turns a little with every clear.
type LightConfig struct {
	Init     float64 `yaml:"init"`
	PerClear float64 `yaml:"per_clear"`
	Duration float64 `yaml:"duration"`
}

type SaveConfig struct {
	// Backend is one of memory, file or badger.
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Slot    string `yaml:"slot"`
}

type ViewConfig struct {
	BlockSize     float64 `yaml:"block_size"`
	DestroyYShift float64 `yaml:"destroy_y_shift"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns the stock game settings.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			Interval:        0.01,
			StillDuration:   0.5,
			DropDuration:    0.1,
			DestroyDuration: 0.5,
			RotateDuration:  0.15,
			SpeedUpCoeff:    0.95,
			MaxStepsPerCall: 25,
		},
		Board: BoardConfig{
			RightBorderX: 11,
			CheckHeight:  20,
			DestroyDelay: 3,
			SpawnX:       5,
			SpawnY:       25,
			MinPieces:    1,
		},
		Score: ScoreConfig{
			PerCombo:       []int{10, 25, 40, 60},
			Milestone:      100,
			MilestoneDelay: 1,
		},
		Light: LightConfig{
			Init:     -10,
			PerClear: 15,
			Duration: 1,
		},
		Save: SaveConfig{
			Backend: "file",
			Path:    "yetrix.save",
			Slot:    "0",
		},
		View: ViewConfig{
			BlockSize:     100,
			DestroyYShift: 300,
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// Load reads path over the defaults. An empty path falls back to $YETRIX_CONFIG, and with
// neither set the defaults are returned as is. The result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges the controller relies on.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	s := c.Simulation
	check(s.Interval > 0, "simulation.interval must be positive, got %v", s.Interval)
	check(s.StillDuration >= 0, "simulation.still_duration must not be negative")
	check(s.DropDuration > 0, "simulation.drop_duration must be positive")
	check(s.DestroyDuration > 0, "simulation.destroy_duration must be positive")
	check(s.RotateDuration >= 0, "simulation.rotate_duration must not be negative")
	check(s.SpeedUpCoeff > 0 && s.SpeedUpCoeff <= 1, "simulation.speed_up_coeff must be in (0, 1], got %v", s.SpeedUpCoeff)

	b := c.Board
	check(b.RightBorderX >= 5, "board.right_border_x must be at least 5, got %d", b.RightBorderX)
	check(b.CheckHeight >= 2, "board.check_height must be at least 2, got %d", b.CheckHeight)
	check(b.DestroyDelay >= 0, "board.destroy_delay must not be negative")
	check(b.SpawnX >= 1 && b.SpawnX+3 < b.RightBorderX, "board.spawn_x %d leaves no room for a piece", b.SpawnX)
	check(b.SpawnY >= 2, "board.spawn_y must be at least 2, got %d", b.SpawnY)
	check(b.MinPieces >= 1, "board.min_pieces must be at least 1, got %d", b.MinPieces)

	check(len(c.Score.PerCombo) > 0, "score.per_combo must not be empty")
	check(c.Score.Milestone >= 0, "score.milestone must not be negative")

	switch c.Save.Backend {
	case "memory":
	case "file", "badger":
		check(c.Save.Path != "", "save.path is required for the %s backend", c.Save.Backend)
	default:
		check(false, "save.backend %q is not one of memory, file, badger", c.Save.Backend)
	}

	check(c.View.BlockSize > 0, "view.block_size must be positive")

	return errors.Join(errs...)
}
