// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid       GridConfig   `yaml:"grid"`
	Timing     TimingConfig `yaml:"timing"`
	Difficulty string       `yaml:"difficulty"` // preset name or raw multiplier
}

// GridConfig defines the playfield.
type GridConfig struct {
	Size int `yaml:"size"` // cells per side; also pixels per cell
}

// TimingConfig defines the scheduler rates.
type TimingConfig struct {
	StartFPS   int `yaml:"start_fps"`   // steps per second before any speed-up
	RefreshFPS int `yaml:"refresh_fps"` // display frames per second driving Frame
}

// Validate rejects configurations the scheduler cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("%w: grid.size must be positive, got %d", ErrInvalidConfig, c.Grid.Size)
	}
	if c.Timing.StartFPS <= 0 {
		return fmt.Errorf("%w: timing.start_fps must be positive, got %d", ErrInvalidConfig, c.Timing.StartFPS)
	}
	if c.Timing.RefreshFPS <= 0 {
		return fmt.Errorf("%w: timing.refresh_fps must be positive, got %d", ErrInvalidConfig, c.Timing.RefreshFPS)
	}
	if _, err := snake.ParseDifficulty(c.Difficulty); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DifficultyValue resolves the configured difficulty.
func (c SnakeConfig) DifficultyValue() (snake.Difficulty, error) {
	return snake.ParseDifficulty(c.Difficulty)
}
