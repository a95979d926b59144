// Package snake implements the game rules and the animation scheduler for a
// single-player snake on a toroidal grid.
// It contains no terminal code: rendering goes through the Surface interface
// and time through the Clock interface so both can be replaced in tests.
package snake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Game constants.
const (
	DefaultGridSize    = 20
	DefaultTailSize    = 5
	DefaultTargetFPS   = 6
	TileSizeMultiplier = 0.9
)

var (
	// ErrInvalidVelocity is returned by ValidateVelocity for anything other
	// than a unit step along one axis or no movement.
	ErrInvalidVelocity = errors.New("snake: invalid velocity")

	// ErrInvalidDifficulty is returned for multipliers outside (0, 1].
	ErrInvalidDifficulty = errors.New("snake: invalid difficulty")
)

// Position is a grid cell coordinate.
type Position struct {
	X, Y int
}

// Add returns p moved by v.
func (p Position) Add(v Velocity) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Velocity is the per-tick head displacement.
type Velocity struct {
	X, Y int
}

// Legal velocities.
var (
	VelocityNone  = Velocity{X: 0, Y: 0}
	VelocityLeft  = Velocity{X: -1, Y: 0}
	VelocityRight = Velocity{X: 1, Y: 0}
	VelocityUp    = Velocity{X: 0, Y: -1}
	VelocityDown  = Velocity{X: 0, Y: 1}
)

// IsZero reports whether v means "no movement".
func (v Velocity) IsZero() bool {
	return v == VelocityNone
}

// ValidateVelocity checks that v is one of the five legal values.
// Step and Scheduler do not call it: any integer pair is accepted there.
func ValidateVelocity(v Velocity) error {
	switch v {
	case VelocityNone, VelocityLeft, VelocityRight, VelocityUp, VelocityDown:
		return nil
	}
	return fmt.Errorf("%w: (%d,%d)", ErrInvalidVelocity, v.X, v.Y)
}

func (v Velocity) String() string {
	switch v {
	case VelocityNone:
		return "none"
	case VelocityLeft:
		return "left"
	case VelocityRight:
		return "right"
	case VelocityUp:
		return "up"
	case VelocityDown:
		return "down"
	default:
		return fmt.Sprintf("(%d,%d)", v.X, v.Y)
	}
}

// Trail is the snake body, oldest cell first and head last.
type Trail []Position

// Last returns the newest element of the trail.
func (t Trail) Last() (Position, bool) {
	if len(t) == 0 {
		return Position{}, false
	}
	return t[len(t)-1], true
}

// Contains reports whether p is one of the trail cells.
func (t Trail) Contains(p Position) bool {
	for _, c := range t {
		if c == p {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with t.
func (t Trail) Clone() Trail {
	if t == nil {
		return nil
	}
	out := make(Trail, len(t))
	copy(out, t)
	return out
}

// GameState is the complete game state advanced by Step.
type GameState struct {
	PlayerPosition Position
	ApplePosition  Position
	Trail          Trail
	TailSize       int
}

// NewGameState returns the state a game starts with: head in the middle of the
// grid, a single-cell trail and an apple on a random cell.
func NewGameState(gridSize int, rng Rand) GameState {
	center := Position{X: gridSize / 2, Y: gridSize / 2}
	return GameState{
		PlayerPosition: center,
		ApplePosition:  randomPosition(gridSize, rng),
		Trail:          Trail{center},
		TailSize:       DefaultTailSize,
	}
}

// Equal compares two states field by field.
func (s GameState) Equal(o GameState) bool {
	if s.PlayerPosition != o.PlayerPosition ||
		s.ApplePosition != o.ApplePosition ||
		s.TailSize != o.TailSize ||
		len(s.Trail) != len(o.Trail) {
		return false
	}
	for i := range s.Trail {
		if s.Trail[i] != o.Trail[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	s.Trail = s.Trail.Clone()
	return s
}

// Difficulty is the factor the frame interval is multiplied by each time the
// snake eats. Smaller values speed the game up faster.
type Difficulty float64

const (
	Easy   Difficulty = 0.95
	Medium Difficulty = 0.9
	Hard   Difficulty = 0.8
)

// Valid reports whether d lies in (0, 1].
func (d Difficulty) Valid() bool {
	return d > 0 && d <= 1
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return strconv.FormatFloat(float64(d), 'g', -1, 64)
	}
}

// ParseDifficulty accepts a preset name or a raw multiplier such as "0.85".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "normal":
		return Medium, nil
	case "hard":
		return Hard, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	d := Difficulty(f)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %v is outside (0, 1]", ErrInvalidDifficulty, f)
	}
	return d, nil
}
