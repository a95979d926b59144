package core

// DefaultGlyphs maps colors to the runes a Canvas paints them with, so that
// the plain-text form of a screen still tells the colors apart.
var DefaultGlyphs = map[Color]rune{
	ColorBlack: '·',
	ColorLime:  '█',
	ColorRed:   '●',
}

// Canvas is a pixel-addressed drawing surface backed by a region of a Screen.
// Every PixelsPerCell x PixelsPerCell block of pixels becomes one grid cell,
// drawn CellWidth columns wide so cells look roughly square in a terminal.
type Canvas struct {
	screen        *Screen
	area          Rect
	pixelsPerCell int
	cellWidth     int
	glyphs        map[Color]rune
}

// NewCanvas creates a canvas over area of screen.
func NewCanvas(screen *Screen, area Rect, pixelsPerCell, cellWidth int) *Canvas {
	return &Canvas{
		screen:        screen,
		area:          area,
		pixelsPerCell: Max(1, pixelsPerCell),
		cellWidth:     Max(1, cellWidth),
		glyphs:        DefaultGlyphs,
	}
}

// Area returns the screen region covered by the canvas.
func (c *Canvas) Area() Rect {
	return c.area
}

// FillBackground paints the whole canvas area.
func (c *Canvas) FillBackground(col Color) {
	c.screen.FillRect(c.area, c.glyph(col), col)
}

// FillRect paints every cell touched by the pixel rectangle (x, y, w, h).
func (c *Canvas) FillRect(x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	ppc := c.pixelsPerCell
	x0, y0 := floorDiv(x, ppc), floorDiv(y, ppc)
	x1, y1 := floorDiv(x+w-1, ppc)+1, floorDiv(y+h-1, ppc)+1

	r := NewRect(
		c.area.X+x0*c.cellWidth,
		c.area.Y+y0,
		(x1-x0)*c.cellWidth,
		y1-y0,
	).Intersect(c.area)
	if r.Empty() {
		return
	}
	c.screen.FillRect(r, c.glyph(col), col)
}

func (c *Canvas) glyph(col Color) rune {
	if g, ok := c.glyphs[col]; ok {
		return g
	}
	return ' '
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
