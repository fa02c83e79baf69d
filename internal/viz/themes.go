package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the viewer panel.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b9d"), // Hero pink
		Secondary: lipgloss.Color("#ff8e53"), // Token orange
		Accent:    lipgloss.Color("#feca57"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#4caf50"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	// Default theme
	CurrentTheme = ThemeSunset

	Themes = []Theme{
		ThemeSunset,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to sunset.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSunset
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeSunset
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
