package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/heroscene/internal/viz"
)

const (
	background = "#0a0a0a"
	defaultDot = "#e0e0e0"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Point is a 2D sample of a path.
type Point struct{ X, Y float64 }

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// the cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := string(canvas.Colors[row][col])
			if fill == "" {
				fill = defaultDot
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PathToSVG draws points as a polyline fitted to a width x height box with
// 10% padding. Y grows upward.
func PathToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
