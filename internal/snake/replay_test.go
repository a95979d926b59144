package snake

import (
	"errors"
	"testing"
	"time"
)

// runLive plays a session on a manual clock with uneven frame timing and
// returns the recorded inputs together with the final scheduler.
func runLive(t *testing.T, seed int64, d Difficulty, ticks uint64, plan map[uint64]Velocity) (*Scheduler, []Input) {
	t.Helper()

	clock := NewManualClock(epoch)
	s, err := Start(d, 6, &recordingSurface{}, nil, WithClock(clock), WithSeed(seed))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var inputs []Input
	applied := map[uint64]bool{}
	jitter := []time.Duration{7, 19, 33, 61, 90}
	for i := 0; s.Ticks() < ticks; i++ {
		if v, ok := plan[s.Ticks()]; ok && !applied[s.Ticks()] {
			s.SetVelocity(v)
			inputs = append(inputs, Input{Tick: s.Ticks(), Velocity: v})
			applied[s.Ticks()] = true
		}
		clock.Advance(jitter[i%len(jitter)] * time.Millisecond)
		s.Frame()
	}
	return s, inputs
}

func TestReplayMatchesLiveRun(t *testing.T) {
	plan := map[uint64]Velocity{
		0:  VelocityRight,
		4:  VelocityDown,
		9:  VelocityLeft,
		15: VelocityUp,
		22: VelocityRight,
		30: VelocityNone,
	}
	live, inputs := runLive(t, 99, Hard, 40, plan)

	surf := &recordingSurface{}
	replayed, err := Replay(ReplayConfig{
		Seed:       99,
		Difficulty: Hard,
		TargetFPS:  6,
		Ticks:      live.Ticks(),
		Inputs:     inputs,
	}, surf)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if !replayed.State().Equal(live.State()) {
		t.Errorf("replayed state %+v differs from live state %+v", replayed.State(), live.State())
	}
	if replayed.Ticks() != live.Ticks() {
		t.Errorf("Ticks() = %d, expected %d", replayed.Ticks(), live.Ticks())
	}
	if replayed.FrameInterval() != live.FrameInterval() {
		t.Errorf("FrameInterval() = %v, expected %v", replayed.FrameInterval(), live.FrameInterval())
	}
	if replayed.Phase() != StateStopped {
		t.Errorf("Phase() = %v, expected stopped", replayed.Phase())
	}
	if surf.backgrounds == 0 {
		t.Error("replay never drew")
	}
}

func TestReplayInputOrderIndependent(t *testing.T) {
	inputs := []Input{
		{Tick: 5, Velocity: VelocityUp},
		{Tick: 0, Velocity: VelocityLeft},
	}
	a, err := Replay(ReplayConfig{Seed: 1, Difficulty: Medium, Ticks: 10, Inputs: inputs}, &recordingSurface{})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	b, err := Replay(ReplayConfig{Seed: 1, Difficulty: Medium, Ticks: 10, Inputs: []Input{inputs[1], inputs[0]}}, &recordingSurface{})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !a.State().Equal(b.State()) {
		t.Error("input order changed the outcome")
	}
	// The caller's slice is left alone.
	if inputs[0].Tick != 5 {
		t.Error("Replay reordered the caller's inputs")
	}
}

func TestReplayStrictRejectsIllegalVelocity(t *testing.T) {
	cfg := ReplayConfig{
		Seed:       1,
		Difficulty: Medium,
		Ticks:      3,
		Inputs:     []Input{{Tick: 1, Velocity: Velocity{X: 2, Y: 0}}},
		Strict:     true,
	}
	if _, err := Replay(cfg, &recordingSurface{}); !errors.Is(err, ErrInvalidVelocity) {
		t.Fatalf("Replay(strict) error = %v, expected ErrInvalidVelocity", err)
	}

	cfg.Strict = false
	if _, err := Replay(cfg, &recordingSurface{}); err != nil {
		t.Fatalf("Replay(permissive): %v", err)
	}
}

func TestReplayPropagatesStartErrors(t *testing.T) {
	if _, err := Replay(ReplayConfig{Difficulty: Medium}, nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("error = %v, expected ErrNoSurface", err)
	}
	if _, err := Replay(ReplayConfig{Difficulty: 2}, &recordingSurface{}); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("error = %v, expected ErrInvalidDifficulty", err)
	}
}
