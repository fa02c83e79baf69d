package viz

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/heroscene/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testCamera() *scene.Camera {
	return &scene.Camera{
		Position: r3.Vec{Z: 5},
		Up:       r3.Vec{Y: 1},
		FOV:      75,
		Near:     0.1,
		Far:      1000,
	}
}

func TestProjectCenter(t *testing.T) {
	x, y, depth, ok := Project(testCamera(), r3.Vec{}, 100, 80)
	require.True(t, ok)
	assert.Equal(t, 50, x)
	assert.Equal(t, 40, y)
	assert.InDelta(t, 5.0, depth, 1e-9)
}

func TestProjectBehindCamera(t *testing.T) {
	_, _, _, ok := Project(testCamera(), r3.Vec{Z: 10}, 100, 80)
	assert.False(t, ok)
}

func TestProjectOrientation(t *testing.T) {
	cam := testCamera()
	x, _, _, _ := Project(cam, r3.Vec{X: 1}, 100, 80)
	assert.Greater(t, x, 50, "+x projects right of center")
	_, y, _, _ := Project(cam, r3.Vec{Y: 1}, 100, 80)
	assert.Less(t, y, 40, "+y projects above center")
}

func TestRotateZ(t *testing.T) {
	p := Rotate(r3.Vec{X: 1}, r3.Vec{Z: math.Pi / 2})
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 1.0, p.Y, 1e-9)
	assert.InDelta(t, 0.0, p.Z, 1e-9)
}

func TestCanvasSetAndPlain(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(-1, 0)
	c.Set(100, 0)
	assert.Equal(t, "⠁⠀\n", c.Plain())

	c.Unset(0, 0)
	assert.Equal(t, "⠀⠀\n", c.Plain())
}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(10, 5)
	w, h := c.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)
}

func TestRenderDrawsScene(t *testing.T) {
	c := NewCanvas(40, 20)
	s, err := scene.Build(c, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	NewSceneRenderer(c).Render(s)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeSunset.Name)

	SetTheme("sunset")
	NextTheme()
	assert.Equal(t, "ocean", CurrentTheme.Name)

	SetTheme("nope")
	assert.Equal(t, "sunset", CurrentTheme.Name)
	assert.Equal(t, []string{"sunset", "ocean", "minimal"}, ThemeNames())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModelTickAdvancesScene(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	require.NotNil(t, m.loop)

	m = update(t, m, TickMsg{})
	assert.Equal(t, 1, m.loop.Scene().Frames())
	assert.Equal(t, 1, m.trace.Len())
}

func TestModelSurvivesMissingTarget(t *testing.T) {
	m := NewModel(Options{Seed: 1}, nil)
	assert.Nil(t, m.loop)
	assert.ErrorIs(t, m.initErr, scene.ErrNoRenderTarget)
	assert.Contains(t, m.View(), "hero unavailable")

	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotNil(t, m.loop)
}

func TestModelExchangeInput(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("10")})
	assert.Equal(t, "8.50", m.exchange.Output)
}

func TestModelScrollReveals(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	for i := 0; i < 10; i++ {
		m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	assert.Equal(t, 400.0, m.scrollTop)
	for _, e := range m.reveal.Elements {
		assert.True(t, e.Visible, e.Name)
	}
}

func TestModelBackspaceRemovesWholeRune(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "name", m.form.Focused())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Zoë")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "Zo", m.form.Values["name"])
	assert.True(t, utf8.ValidString(m.form.Values["name"]))

	for i := 0; i < 3; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	assert.Empty(t, m.form.Values["name"])
}

func TestModelSendButtonHover(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	x, y := -1, -1
	for i, line := range strings.Split(m.View(), "\n") {
		if idx := strings.Index(line, "[Send message]"); idx >= 0 {
			x, y = lipgloss.Width(line[:idx]), i
		}
	}
	require.GreaterOrEqual(t, y, 0)

	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y, Action: tea.MouseActionMotion})
	assert.True(t, m.buttons.Hovered(sendButton))
	dy, scale := m.buttons.Transform(sendButton)
	assert.Equal(t, -3.0, dy)
	assert.Equal(t, 1.02, scale)
	assert.Equal(t, 2.0, m.cursor.Scale)

	m = update(t, m, tea.MouseMsg{X: x + 2, Y: y + 1, Action: tea.MouseActionMotion})
	assert.False(t, m.buttons.Hovered(sendButton))
}

func TestModelJumpToSection(t *testing.T) {
	m := NewModel(Options{Width: 40, Height: 20, Seed: 1}, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.True(t, m.scroll.Active())

	start := time.Now()
	for i := 1; i <= 40 && m.scroll.Active(); i++ {
		m = update(t, m, TickMsg(start.Add(time.Duration(i)*50*time.Millisecond)))
	}
	assert.False(t, m.scroll.Active())
	assert.Equal(t, 320.0, m.scrollTop)
	assert.True(t, m.reveal.Elements[2].Visible)
	assert.False(t, m.reveal.Elements[3].Visible)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.False(t, m.scroll.Active())
	assert.Equal(t, 360.0, m.scrollTop)
}

func TestWireframeCache(t *testing.T) {
	cache := make(WireframeCache)
	torus := scene.Shape{Kind: scene.KindTorus, Radius: 1.2, Tube: 0.3}
	disk := scene.Shape{Kind: scene.KindDisk, Radius: 0.15, Height: 0.05}

	w := cache.Get(torus)
	require.NotZero(t, w.Len())
	assert.Same(t, w, cache.Get(torus))
	assert.NotSame(t, w, cache.Get(disk))
	assert.Len(t, cache, 2)
}
