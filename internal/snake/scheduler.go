package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"
)

// ErrNoSurface is returned by Start when no drawing surface is supplied.
var ErrNoSurface = errors.New("snake: render surface is unavailable")

// minFrameInterval bounds repeated speed-ups so the interval never reaches zero.
const minFrameInterval = time.Millisecond

// SchedulerState is the lifecycle phase of a Scheduler.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateRunning
	StateStopped
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Option customizes a Scheduler created by Start.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithRand replaces the random source used for apple placement.
func WithRand(r Rand) Option {
	return func(s *Scheduler) {
		s.rng = r
	}
}

// WithSeed seeds a private math/rand source.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithGridSize overrides DefaultGridSize.
func WithGridSize(n int) Option {
	return func(s *Scheduler) {
		s.gridSize = n
	}
}

// WithInitialState starts from st instead of NewGameState.
func WithInitialState(st GameState) Option {
	return func(s *Scheduler) {
		initial := st.Clone()
		s.initial = &initial
	}
}

// WithStepObserver registers fn to be called after every step, changed or not.
func WithStepObserver(fn func(StepResult)) Option {
	return func(s *Scheduler) {
		s.onStep = fn
	}
}

// Scheduler advances the game at a variable rate. Frame must be called once
// per display frame; a step only happens once more than the current frame
// interval has elapsed since the previous one.
//
// A Scheduler is not safe for concurrent use: Frame and SetVelocity are
// expected to run on one goroutine (the UI loop).
type Scheduler struct {
	clock    Clock
	rng      Rand
	surface  Surface
	onUpdate func(GameState)
	onStep   func(StepResult)
	initial  *GameState

	difficulty Difficulty
	gridSize   int

	baseInterval  time.Duration
	frameInterval time.Duration
	lastTick      time.Time

	velocity Velocity
	state    GameState
	ticks    uint64
	phase    SchedulerState
}

// Start creates a running scheduler and draws the initial state onto surface.
// targetFPS sets the base frame interval (1s/targetFPS); values <= 0 fall back
// to DefaultTargetFPS. onUpdate may be nil.
func Start(d Difficulty, targetFPS int, surface Surface, onUpdate func(GameState), opts ...Option) (*Scheduler, error) {
	if isNilSurface(surface) {
		return nil, ErrNoSurface
	}
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDifficulty, float64(d))
	}
	if targetFPS <= 0 {
		targetFPS = DefaultTargetFPS
	}

	s := &Scheduler{
		clock:      SystemClock,
		surface:    surface,
		onUpdate:   onUpdate,
		difficulty: d,
		gridSize:   DefaultGridSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gridSize <= 0 {
		return nil, fmt.Errorf("snake: invalid grid size %d", s.gridSize)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.baseInterval = time.Second / time.Duration(targetFPS)
	s.frameInterval = s.baseInterval
	s.lastTick = s.clock.Now()
	if s.initial != nil {
		s.state = *s.initial
	} else {
		s.state = NewGameState(s.gridSize, s.rng)
	}
	s.phase = StateRunning

	Draw(s.surface, s.state, s.gridSize)
	return s, nil
}

// isNilSurface also catches a typed nil pointer wrapped in the interface.
func isNilSurface(s Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// SetVelocity replaces the held velocity. Only the value present when the next
// step is due matters.
func (s *Scheduler) SetVelocity(v Velocity) {
	s.velocity = v
}

// Frame is the per-display-frame callback. It reports whether a step ran.
func (s *Scheduler) Frame() bool {
	if s.phase != StateRunning {
		return false
	}

	now := s.clock.Now()
	elapsed := now.Sub(s.lastTick)
	if elapsed <= s.frameInterval {
		return false
	}
	// Keep the phase of the schedule instead of restarting it at now.
	s.lastTick = now.Add(-(elapsed % s.frameInterval))

	s.advance()
	return true
}

// advance runs one step and publishes the result.
func (s *Scheduler) advance() {
	res := Step(s.state, s.velocity, s.difficulty, s.gridSize, s.rng)
	s.ticks++

	if res.Reset {
		s.frameInterval = s.baseInterval
	}
	if res.Ate {
		s.frameInterval = max(minFrameInterval, time.Duration(float64(s.frameInterval)*res.Multiplier))
	}
	if s.onStep != nil {
		s.onStep(res)
	}

	prev := s.state
	s.state = res.State
	if prev.Equal(s.state) {
		return
	}

	Draw(s.surface, s.state, s.gridSize)
	if s.onUpdate != nil {
		s.onUpdate(s.state.Clone())
	}
}

// Stop ends the loop; later Frame calls do nothing.
func (s *Scheduler) Stop() {
	s.phase = StateStopped
}

// Phase returns the lifecycle phase.
func (s *Scheduler) Phase() SchedulerState {
	return s.phase
}

// State returns a copy of the current game state.
func (s *Scheduler) State() GameState {
	return s.state.Clone()
}

// Velocity returns the held velocity.
func (s *Scheduler) Velocity() Velocity {
	return s.velocity
}

// FrameInterval returns the current time between steps.
func (s *Scheduler) FrameInterval() time.Duration {
	return s.frameInterval
}

// BaseInterval returns the interval the scheduler resets to on collision.
func (s *Scheduler) BaseInterval() time.Duration {
	return s.baseInterval
}

// StepsPerSecond converts the frame interval to a rate for display.
func (s *Scheduler) StepsPerSecond() float64 {
	if s.frameInterval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.frameInterval)
}

// Ticks returns the number of steps taken so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// Difficulty returns the active difficulty.
func (s *Scheduler) Difficulty() Difficulty {
	return s.difficulty
}

// GridSize returns the grid side length in cells.
func (s *Scheduler) GridSize() int {
	return s.gridSize
}
