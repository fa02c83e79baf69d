package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Styles derived from the current theme. Recomputed per frame so theme
// switches apply immediately.
func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).MarginBottom(1)
}

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func pulseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
}

func statusStyle(ok bool) lipgloss.Style {
	if ok {
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Success)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Error)
}

// GradientText colors text with a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLuv(b, t).Clamped()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return result.String()
}

// Separator is a decorative rule.
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return strings.Repeat("─", width)
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", max(0, width-mid-3))
	return mutedStyle().Render(left + " ◆ " + right)
}
