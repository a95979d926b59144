package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestTileSize(t *testing.T) {
	tests := []struct {
		grid     int
		expected int
	}{
		{20, 18},
		{10, 9},
		{1, 0},
		{15, 13},
	}
	for _, tc := range tests {
		if got := TileSize(tc.grid); got != tc.expected {
			t.Errorf("TileSize(%d) = %d, expected %d", tc.grid, got, tc.expected)
		}
	}
}

func TestDraw(t *testing.T) {
	state := GameState{
		PlayerPosition: Position{X: 11, Y: 10},
		ApplePosition:  Position{X: 3, Y: 7},
		Trail:          Trail{{X: 10, Y: 10}, {X: 11, Y: 10}},
		TailSize:       5,
	}
	surf := &recordingSurface{}

	Draw(surf, state, 20)

	if surf.backgrounds != 1 {
		t.Fatalf("expected background fill, got %d", surf.backgrounds)
	}
	expected := []rect{
		{200, 200, 18, 18, core.ColorLime},
		{220, 200, 18, 18, core.ColorLime},
		{60, 140, 18, 18, core.ColorRed},
	}
	if len(surf.rects) != len(expected) {
		t.Fatalf("got %d rects, expected %d", len(surf.rects), len(expected))
	}
	for i, r := range expected {
		if surf.rects[i] != r {
			t.Errorf("rect %d = %+v, expected %+v", i, surf.rects[i], r)
		}
	}
}

func TestDrawOntoCanvas(t *testing.T) {
	// 20x20 grid, one terminal row per cell and two columns per cell.
	screen := core.NewScreen(40, 20)
	canvas := core.NewCanvas(screen, screen.Bounds(), 20, 2)

	Draw(canvas, GameState{
		PlayerPosition: Position{X: 0, Y: 0},
		ApplePosition:  Position{X: 19, Y: 19},
		Trail:          Trail{{X: 0, Y: 0}},
		TailSize:       5,
	}, 20)

	if c := screen.GetCell(0, 0); c.Color != core.ColorLime {
		t.Errorf("head cell color = %v, expected lime", c.Color)
	}
	if c := screen.GetCell(39, 19); c.Color != core.ColorRed {
		t.Errorf("apple cell color = %v, expected red", c.Color)
	}
	if c := screen.GetCell(10, 10); c.Color != core.ColorBlack {
		t.Errorf("empty cell color = %v, expected black", c.Color)
	}
}
