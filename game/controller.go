// Package game drives a board through the drop, destroy and rotate phases of the falling
// block game: it counts player intents, runs the fixed-step phase machine, keeps score and
// speed, and saves progress to a slot.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/sched"
	"github.com/plus3/yetrix/store"
)

// Controller owns a board and the simulation state around it. It is not safe for concurrent
// use: intents, Advance and Snapshot must come from one goroutine.
type Controller struct {
	cfg   config.Config
	board *board.Board

	scheduler *sched.Scheduler
	stepper   *sched.Stepper
	timers    *sched.Timers

	presenter Presenter
	slot      store.Slot
	rng       *rand.Rand
	log       *slog.Logger

	st state

	// kept across games
	hiScore        int
	worstCondition int
	condition      int
	gamesOver      int
}

// state is everything ResetGame rebuilds.
type state struct {
	phase Phase
	timer float64

	stillDuration float64
	dropDuration  float64

	pendingLeft   int
	pendingRight  int
	pendingRotate int

	quickDrop        bool
	quickDropApplied bool

	score   int
	cleared []int

	rotatePiece board.PieceID
	rotateTimer float64
	rotateStage RotationStage

	lightStart   float64
	lightEnd     float64
	lightCurrent float64
	lightTimer   float64
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	presenter Presenter
	listener  board.Listener
	slot      store.Slot
	rng       *rand.Rand
	log       *slog.Logger
}

// WithPresenter routes sounds, score and visual state to p.
func WithPresenter(p Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// WithListener routes cell notifications of the board to l.
func WithListener(l board.Listener) Option {
	return func(o *options) { o.listener = l }
}

// WithSlot sets where the game is saved. Without it the game saves to memory.
func WithSlot(s store.Slot) Option {
	return func(o *options) { o.slot = s }
}

// WithRand sets the random source for shapes and sound variations. It overrides the
// configured seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds a controller with an empty board.
func New(cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	o := options{
		presenter: NopPresenter{},
		listener:  board.NopListener{},
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.slot == nil {
		o.slot = store.NewMemory()
	}
	if o.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	c := &Controller{
		cfg:       cfg,
		presenter: o.presenter,
		slot:      o.slot,
		rng:       o.rng,
		log:       o.log,
		timers:    sched.NewTimers(),
	}

	c.board = board.New(
		board.WithRightBorder(cfg.Board.RightBorderX),
		board.WithCheckHeight(cfg.Board.CheckHeight),
		board.WithDestroyDelay(cfg.Board.DestroyDelay),
		board.WithListener(o.listener),
		board.WithRand(c.rng),
		board.WithLogger(c.log),
	)

	c.scheduler = sched.NewScheduler()
	c.scheduler.Register(&timerSystem{c: c})
	c.scheduler.Register(&lightSystem{c: c})
	c.scheduler.Register(&phaseSystem{c: c})
	c.scheduler.Register(&inputSystem{c: c})
	c.scheduler.Register(&cleanupSystem{c: c})

	c.stepper = sched.NewStepper(c.scheduler, cfg.Simulation.Interval)
	c.stepper.MaxSteps = cfg.Simulation.MaxStepsPerCall

	c.ResetGame()
	return c, nil
}

// ResetGame clears the board and every piece of game state except the hi score and the
// worst condition score. Pending timers are dropped.
func (c *Controller) ResetGame() {
	c.board.Reset()
	c.timers.Clear()

	c.st = state{
		phase:         Still,
		stillDuration: c.cfg.Simulation.StillDuration,
		dropDuration:  c.cfg.Simulation.DropDuration,
		rotatePiece:   board.NoPiece,
		lightStart:    c.cfg.Light.Init,
		lightEnd:      c.cfg.Light.Init,
		lightCurrent:  c.cfg.Light.Init,
	}
	c.st.timer = c.st.stillDuration
	c.condition = 0

	c.presenter.LightAngle(c.st.lightCurrent)
	c.presenter.ScoreChanged(c.st.score, c.hiScore)
}

// Advance feeds wall-clock time to the fixed-step loop and returns the ticks run.
func (c *Controller) Advance(dt float64) int {
	return c.stepper.Advance(dt)
}

// Step runs exactly one simulation tick.
func (c *Controller) Step() {
	c.scheduler.Once(c.cfg.Simulation.Interval)
}

// Board exposes the board for read access. Mutating it directly bypasses the phase machine.
func (c *Controller) Board() *board.Board { return c.board }

// Stats returns the per-system timing of the simulation.
func (c *Controller) Stats() *sched.SchedulerStats { return c.scheduler.Stats() }

// Config returns the settings the controller runs with.
func (c *Controller) Config() config.Config { return c.cfg }

// Snapshot is a read-only summary of the controller.
type Snapshot struct {
	Phase         Phase
	Stage         RotationStage
	PhaseTimer    float64
	Score         int
	HiScore       int
	Condition     int
	WorstCond     int
	SpeedMult     float64
	StillDuration float64
	DropDuration  float64
	PendingLeft   int
	PendingRight  int
	PendingRotate int
	QuickDrop     bool
	LightAngle    float64
	Pieces        int
	Cells         int
	Tick          uint64
	Time          float64
	GamesOver     int
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:         c.st.phase,
		Stage:         c.st.rotateStage,
		PhaseTimer:    c.st.timer,
		Score:         c.st.score,
		HiScore:       c.hiScore,
		Condition:     c.condition,
		WorstCond:     c.worstCondition,
		SpeedMult:     c.speedMultiplier(),
		StillDuration: c.st.stillDuration,
		DropDuration:  c.st.dropDuration,
		PendingLeft:   c.st.pendingLeft,
		PendingRight:  c.st.pendingRight,
		PendingRotate: c.st.pendingRotate,
		QuickDrop:     c.st.quickDrop,
		LightAngle:    c.st.lightCurrent,
		Pieces:        c.board.PieceCount(),
		Cells:         c.board.CellCount(),
		Tick:          c.scheduler.Ticks(),
		Time:          c.scheduler.Now(),
		GamesOver:     c.gamesOver,
	}
}

// speedMultiplier is speedUpCoeff^(score/10). The exponent is fractional, so every point
// speeds the game up a little.
func (c *Controller) speedMultiplier() float64 {
	return math.Pow(c.cfg.Simulation.SpeedUpCoeff, float64(c.st.score)/10)
}

func (c *Controller) updateSpeed() {
	mult := c.speedMultiplier()
	c.st.stillDuration = c.cfg.Simulation.StillDuration * mult
	c.st.dropDuration = c.cfg.Simulation.DropDuration * mult
}
