package export

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroscene/internal/viz"
	"github.com/stretchr/testify/assert"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetPen(lipgloss.Color("#ff6b9d"))
	c.Set(0, 0)
	c.SetPen("")
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `width="8" height="8"`)
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `cx="1.0" cy="1.0" r="0.8" fill="#ff6b9d"`)
	assert.Contains(t, svg, `fill="`+defaultDot+`"`)
}

func TestCanvasToSVGNil(t *testing.T) {
	assert.Empty(t, CanvasToSVG(nil, 1))
}

func TestPathToSVG(t *testing.T) {
	assert.Empty(t, PathToSVG([]Point{{0, 0}}, 100, 100, "#fff"))

	svg := PathToSVG([]Point{{0, 0}, {1, 1}}, 120, 120, "#fff")
	// 10% padding on each side of a unit range.
	assert.Contains(t, svg, `d="M10.0,110.0 L110.0,10.0"`)
	assert.Contains(t, svg, `stroke="#fff"`)
}
