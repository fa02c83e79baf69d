package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille canvas with one color per cell. The last pen used on
// a cell wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
	pen           lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Size implements scene.Target.
func (c *Canvas) Size() (int, int) { return c.PixelSize() }

// SetPen selects the color for subsequent drawing. Empty means the
// terminal default.
func (c *Canvas) SetPen(color lipgloss.Color) { c.pen = color }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.pen
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a circle of radius r sub-pixels around (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

// Plain renders the canvas without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas, styling runs of cells that share a color.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if color := c.Colors[i][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(color).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
