package picker

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used by the template picker.
// Use DarkTheme() or LightTheme() to get a pre-built theme,
// or construct a custom Theme.
type Theme struct {
	Primary   lipgloss.Color // title, template name in preview
	Secondary lipgloss.Color // selected row text
	Accent    lipgloss.Color // window headings in preview
	Error     lipgloss.Color // failed operations
	Warning   lipgloss.Color // delete confirmation
	Success   lipgloss.Color // completed operations
	Text      lipgloss.Color // primary text
	TextMuted lipgloss.Color // descriptions, hints, pane lines
	Selection lipgloss.Color // selected row background
	Border    lipgloss.Color // separators
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Accent:    lipgloss.Color("#e5c07b"),
		Error:     lipgloss.Color("#e06c75"),
		Warning:   lipgloss.Color("#f5a742"),
		Success:   lipgloss.Color("#7fd88f"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Selection: lipgloss.Color("#1e1e1e"),
		Border:    lipgloss.Color("#484848"),
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Accent:    lipgloss.Color("#7d4e00"),
		Error:     lipgloss.Color("#cf222e"),
		Warning:   lipgloss.Color("#bf8700"),
		Success:   lipgloss.Color("#116329"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Selection: lipgloss.Color("#f6f8fa"),
		Border:    lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds all lipgloss styles derived from a Theme.
type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	heading  lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	ok       lipgloss.Style
	border   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.Selection),
		heading:  lipgloss.NewStyle().Foreground(t.Accent),
		text:     lipgloss.NewStyle().Foreground(t.Text),
		dim:      lipgloss.NewStyle().Foreground(t.TextMuted),
		warn:     lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		ok:       lipgloss.NewStyle().Foreground(t.Success),
		border:   lipgloss.NewStyle().Foreground(t.Border),
	}
}
