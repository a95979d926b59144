package snake

import (
	"fmt"
	"sort"
	"time"
)

// Input is a recorded velocity change. Tick is the number of steps that had
// completed when the velocity was set, so it applies to step Tick+1.
type Input struct {
	Tick     uint64
	Velocity Velocity
}

// ReplayConfig describes a recorded session.
type ReplayConfig struct {
	Seed       int64
	Difficulty Difficulty
	TargetFPS  int
	GridSize   int
	Ticks      uint64
	Inputs     []Input

	// Strict rejects recorded velocities that are not one of the legal values.
	Strict bool
}

// Replay re-runs a recorded session on a scheduler driven by a manual clock and
// returns it stopped after cfg.Ticks steps. The final state is drawn on surface.
func Replay(cfg ReplayConfig, surface Surface) (*Scheduler, error) {
	if cfg.Strict {
		for _, in := range cfg.Inputs {
			if err := ValidateVelocity(in.Velocity); err != nil {
				return nil, fmt.Errorf("snake: replay input at tick %d: %w", in.Tick, err)
			}
		}
	}

	gridSize := cfg.GridSize
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	clock := NewManualClock(time.Unix(0, 0))
	s, err := Start(cfg.Difficulty, cfg.TargetFPS, surface, nil,
		WithClock(clock),
		WithSeed(cfg.Seed),
		WithGridSize(gridSize),
	)
	if err != nil {
		return nil, err
	}

	inputs := make([]Input, len(cfg.Inputs))
	copy(inputs, cfg.Inputs)
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Tick < inputs[j].Tick
	})

	next := 0
	for s.Ticks() < cfg.Ticks {
		for next < len(inputs) && inputs[next].Tick <= s.Ticks() {
			s.SetVelocity(inputs[next].Velocity)
			next++
		}
		clock.Advance(s.FrameInterval() + time.Nanosecond)
		if !s.Frame() {
			return nil, fmt.Errorf("snake: replay stalled at tick %d", s.Ticks())
		}
	}

	s.Stop()
	return s, nil
}
