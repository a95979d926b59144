package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Surface is a 2D drawing target addressed in pixels.
type Surface interface {
	FillBackground(c core.Color)
	FillRect(x, y, w, h int, c core.Color)
}

// Palette used by Draw.
const (
	BackgroundColor = core.ColorBlack
	TrailColor      = core.ColorLime
	AppleColor      = core.ColorRed
)

// TileSize returns the side of a drawn cell in pixels.
func TileSize(gridSize int) int {
	return int(float64(gridSize) * TileSizeMultiplier)
}

// Draw clears dst and paints the trail and the apple. A cell (x, y) maps to
// the pixel square at (x*gridSize, y*gridSize) with side TileSize(gridSize).
func Draw(dst Surface, state GameState, gridSize int) {
	tile := TileSize(gridSize)

	dst.FillBackground(BackgroundColor)
	for _, p := range state.Trail {
		dst.FillRect(p.X*gridSize, p.Y*gridSize, tile, tile, TrailColor)
	}
	a := state.ApplePosition
	dst.FillRect(a.X*gridSize, a.Y*gridSize, tile, tile, AppleColor)
}
