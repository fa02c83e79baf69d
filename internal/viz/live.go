package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heroscene/internal/metrics"
	"github.com/san-kum/heroscene/internal/page"
	"github.com/san-kum/heroscene/internal/scene"
	"go.uber.org/zap"
)

const (
	historyCapacity = 240
	panelWidth      = 48

	// Canvas origin on screen, from canvasStyle padding.
	canvasOffsetX = 2
	canvasOffsetY = 1

	// Panel content origin relative to the hero, from panelStyle border
	// and padding.
	panelOffsetX = 3
	panelOffsetY = 1

	scrollStep      = 40.0
	pageViewport    = 600.0
	cursorDotRadius = 1

	sendButton = "send"
)

type TickMsg time.Time

// Options configure the viewer. Width and Height are in terminal cells and
// are replaced by the window size once it is known.
type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Damping       float64
	PointerScale  float64
	Theme         string
}

type focusField int

const (
	focusNone focusField = iota
	focusExchange
	focusName
	focusEmail
)

var focusOrder = []focusField{focusNone, focusExchange, focusName, focusEmail}

// Model is the terminal landing page: the hero scene on a braille canvas and
// a side panel with the page widgets.
type Model struct {
	opts     Options
	log      *zap.Logger
	canvas   *Canvas
	renderer *SceneRenderer
	loop     *scene.Loop
	initErr  error
	trace    *metrics.Trace

	steps    *page.Steps
	exchange *page.Exchange
	form     *page.Form
	reveal   *page.Reveal
	cursor   *page.Cursor
	buttons  *page.Buttons
	scroll   *page.SmoothScroll

	focus     focusField
	scrollTop float64
	pointerOn bool
	last      time.Time
	showHelp  bool
}

// NewModel builds the page. A scene that fails to initialize is logged and
// the rest of the page keeps working without it.
func NewModel(opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	SetTheme(opts.Theme)

	canvas := NewCanvas(opts.Width, opts.Height)
	m := Model{
		opts:     opts,
		log:      log,
		canvas:   canvas,
		renderer: NewSceneRenderer(canvas),
		trace:    metrics.NewTrace(historyCapacity),
		steps:    page.NewSteps("Download", "Connect", "Exchange", "Send"),
		exchange: page.NewExchange(),
		form:     page.NewForm("name", "email"),
		reveal:   &page.Reveal{},
		cursor:   page.NewCursor(),
		buttons:  page.NewButtons(),
		scroll:   &page.SmoothScroll{},
	}
	m.reveal.Add("Features", 0, 300, page.SectionOffset)
	m.reveal.Add("How it works", 320, 260, page.SectionOffset)
	m.reveal.Add("Testimonials", 620, 220, page.CardOffset)
	m.reveal.Add("Contact", 880, 240, page.SectionOffset)
	m.reveal.Observe(m.scrollTop, pageViewport)

	loop, err := m.initScene()
	if err != nil {
		m.initErr = err
		log.Error("failed to initialize scene", zap.Error(err))
	} else {
		m.loop = loop
		log.Info("scene initialized",
			zap.Int("objects", len(loop.Scene().Objects)),
			zap.Int64("seed", opts.Seed))
	}
	return m
}

func (m *Model) initScene() (*scene.Loop, error) {
	s, err := scene.Build(m.canvas, rand.New(rand.NewSource(m.opts.Seed)))
	if err != nil {
		return nil, err
	}
	if m.opts.Damping > 0 {
		s.Damping = m.opts.Damping
	}
	if m.opts.PointerScale > 0 {
		s.PointerScale = m.opts.PointerScale
	}
	loop := scene.NewLoop(s, m.renderer, scene.NewWallClock())
	loop.AddObserver(m.trace)
	return loop, nil
}

func (m Model) frameDuration() time.Duration {
	fps := m.opts.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameDuration(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		if cmd := m.key(msg); cmd != nil {
			return m, cmd
		}
	case TickMsg:
		now := time.Time(msg)
		dt := m.frameDuration()
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.steps.Advance(dt)
		m.exchange.Advance(dt)
		m.form.Advance(dt)
		if off, ok := m.scroll.Advance(dt); ok {
			m.scrollTo(off)
		}
		if m.loop != nil {
			m.loop.Tick()
			m.drawCursor()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := w - panelWidth - 2*canvasOffsetX - 2
	ch := h - 2*canvasOffsetY - 1
	if cw <= 0 || ch <= 0 {
		return
	}
	m.canvas = NewCanvas(cw, ch)
	m.renderer.Canvas = m.canvas
	if m.loop == nil {
		loop, err := m.initScene()
		if err != nil {
			m.log.Error("failed to initialize scene", zap.Error(err))
			return
		}
		m.loop, m.initErr = loop, nil
		return
	}
	pw, ph := m.canvas.PixelSize()
	m.loop.Scene().Resize(pw, ph)
}

func (m *Model) mouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return
		}
		m.scroll.Stop()
		if msg.Button == tea.MouseButtonWheelUp {
			m.scrollTo(max(0, m.scrollTop-scrollStep))
		} else {
			m.scrollTo(m.scrollTop + scrollStep)
		}
		return
	}

	if m.sendButtonAt(msg.X, msg.Y) {
		m.buttons.Enter(sendButton)
	} else {
		m.buttons.Leave(sendButton)
	}

	px := float64((msg.X - canvasOffsetX) * 2)
	py := float64((msg.Y - canvasOffsetY) * 4)
	m.pointerOn = true
	m.cursor.Move(px, py)
	m.cursor.Hover(msg.X >= canvasOffsetX+m.canvas.Width)
	if m.loop != nil {
		m.loop.Scene().SetPointer(px, py)
	}
}

// scrollTo moves the page to offset, revealing sections and queueing a
// scroll nudge for the hero.
func (m *Model) scrollTo(offset float64) {
	m.scrollTop = offset
	for _, e := range m.reveal.Observe(m.scrollTop, pageViewport) {
		m.log.Debug("section revealed", zap.String("section", e.Name))
	}
	if m.loop != nil {
		m.loop.Scroll()
	}
}

// sendButtonAt reports whether screen cell (x, y) is on the send button.
func (m Model) sendButtonAt(x, y int) bool {
	row := panelOffsetY + strings.Count(m.panelHead(), "\n")
	if m.showHelp {
		row += strings.Count(helpText, "\n") + 1
	}
	col := m.canvas.Width + 2*canvasOffsetX + panelOffsetX
	return y == row && x >= col && x < col+lipgloss.Width(m.sendButton())
}

func (m *Model) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		m.cycleFocus()
		return nil
	case "enter":
		if m.focus == focusExchange {
			m.exchange.Flip()
		} else if m.form.Submit() {
			m.log.Info("contact form submitted")
		}
		return nil
	case "backspace":
		m.editFocused(func(s string) string {
			_, n := utf8.DecodeLastRuneInString(s)
			return s[:len(s)-n]
		})
		return nil
	}

	if m.focus != focusNone {
		if msg.Type == tea.KeyRunes {
			text := string(msg.Runes)
			m.editFocused(func(s string) string { return s + text })
		}
		if msg.Type == tea.KeyEsc {
			m.focus = focusNone
			m.form.Focus("")
		}
		return nil
	}

	switch k := msg.String(); k {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		NextTheme()
	case "r":
		m.steps.Restart()
	case "n":
		if e := m.reveal.Next(m.scrollTop); e != nil {
			m.scroll.Start(m.scrollTop, e.Top)
		}
	case "1", "2", "3", "4":
		m.steps.Select(int(k[0] - '1'))
	}
	return nil
}

func (m *Model) cycleFocus() {
	for i, f := range focusOrder {
		if f == m.focus {
			m.focus = focusOrder[(i+1)%len(focusOrder)]
			break
		}
	}
	switch m.focus {
	case focusName:
		m.form.Focus("name")
	case focusEmail:
		m.form.Focus("email")
	default:
		m.form.Focus("")
	}
}

func (m *Model) editFocused(edit func(string) string) {
	switch m.focus {
	case focusExchange:
		m.exchange.SetInput(edit(m.exchange.Input))
	case focusName, focusEmail:
		if m.form.State() != page.FormIdle {
			return
		}
		name := m.form.Focused()
		if name == "" {
			return
		}
		m.form.Set(name, edit(m.form.Values[name]))
	}
}

func (m *Model) drawCursor() {
	if !m.pointerOn {
		return
	}
	m.canvas.SetPen(lipgloss.Color("#ffffff"))
	x := int(m.cursor.X + page.CursorRadius)
	y := int(m.cursor.Y + page.CursorRadius)
	m.canvas.DrawDisc(x, y, int(float64(cursorDotRadius)*m.cursor.Scale))
	m.canvas.SetPen("")
}

// View renders the hero next to the page panel.
func (m Model) View() string {
	var hero string
	if m.loop != nil {
		hero = canvasStyle.Render(m.canvas.String())
	} else {
		msg := "hero unavailable"
		if m.initErr != nil {
			msg = fmt.Sprintf("hero unavailable: %v", m.initErr)
		}
		hero = canvasStyle.Render(mutedStyle().Render(msg))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, hero, panelStyle.Render(m.panel()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (m Model) panel() string {
	return m.panelHead() + m.sendButton() + "\n" + m.panelTail()
}

// panelHead is everything above the send button.
func (m Model) panelHead() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText("HEROSCENE", CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")

	s.WriteString(labelStyle.Render("Steps") + "\n")
	for i, label := range m.steps.Labels {
		line := fmt.Sprintf("%d. %s", i+1, label)
		if m.steps.IsActive(i) {
			s.WriteString(activeStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + mutedStyle().Render(line) + "\n")
		}
	}

	s.WriteString("\n" + labelStyle.Render("Exchange") + "\n")
	arrow := "→"
	if m.exchange.Flipped() {
		arrow = "←"
	}
	out := m.exchange.Output
	if m.exchange.Pulsing() {
		out = pulseStyle().Render(out)
	}
	s.WriteString(fmt.Sprintf("%s EUR %s %s GBP\n", m.field(focusExchange, m.exchange.Input), arrow, out))

	s.WriteString("\n" + labelStyle.Render("Contact") + "\n")
	s.WriteString("name  " + m.field(focusName, m.form.Values["name"]) + "\n")
	s.WriteString("email " + m.field(focusEmail, m.form.Values["email"]) + "\n")
	return s.String()
}

func (m Model) sendButton() string {
	style := statusStyle(m.form.State() != page.FormSending)
	if dy, _ := m.buttons.Transform(sendButton); dy < 0 {
		style = style.Reverse(true)
	}
	return style.Render("[" + m.form.Button() + "]")
}

func (m Model) panelTail() string {
	var s strings.Builder
	s.WriteString("\n" + labelStyle.Render("Sections") + "\n")
	for _, e := range m.reveal.Elements {
		if e.Visible {
			s.WriteString("  " + valueStyle.Render(e.Name) + "\n")
		} else {
			s.WriteString("  " + mutedStyle().Render(fmt.Sprintf("%s (+%.0f)", e.Name, e.Shift())) + "\n")
		}
	}

	s.WriteString("\n" + Separator(40) + "\n")
	if m.loop != nil {
		sc := m.loop.Scene()
		s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", sc.Frames())) + "\n")
		s.WriteString(labelStyle.Render("Camera") + valueStyle.Render(fmt.Sprintf("%+.3f %+.3f", sc.Camera.Position.X, sc.Camera.Position.Y)) + "\n")
		if errs := m.trace.CameraError(); len(errs) > 1 {
			chart := asciigraph.Plot(errs, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("camera lag"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	} else {
		s.WriteString(statusStyle(false).Render("scene offline") + "\n")
	}

	s.WriteString(helpStyle.Render("TAB:Focus ENTER:Send/Swap 1-4:Step\nN:Section R:Restart T:Theme ?:Help Q:Quit"))
	return s.String()
}

func (m Model) field(f focusField, value string) string {
	text := fmt.Sprintf("[%-8s]", value)
	if m.focus == f {
		return activeStyle().Render(text)
	}
	return valueStyle.Render(text)
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Tilt the hero            ║
║  Wheel    - Scroll the page          ║
║  N        - Jump to next section     ║
║  Tab      - Focus next field         ║
║  Enter    - Submit form / swap arrow ║
║  1-4      - Select process step      ║
║  R        - Restart steps            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the terminal viewer and blocks until it exits.
func Run(opts Options, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(opts, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
