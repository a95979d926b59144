package config

import "github.com/vovakirdan/tui-snake/internal/snake"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyFixed}

// MultiplierForPreset returns the frame interval multiplier for a preset.
// Fixed keeps the starting speed for the whole game.
func MultiplierForPreset(preset DifficultyPreset) (snake.Difficulty, bool) {
	switch preset {
	case DifficultyEasy:
		return snake.Easy, true
	case DifficultyMedium:
		return snake.Medium, true
	case DifficultyHard:
		return snake.Hard, true
	case DifficultyFixed:
		return 1, true
	default:
		return 0, false
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	d, ok := MultiplierForPreset(preset)
	if !ok {
		return
	}
	cfg.Difficulty = d.String()

	// Easier games also start slower.
	switch preset {
	case DifficultyEasy:
		cfg.Timing.StartFPS = max(1, cfg.Timing.StartFPS-1)
	case DifficultyHard:
		cfg.Timing.StartFPS++
	}
}
