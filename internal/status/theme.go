package status

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the status report.
type Theme struct {
	Primary   lipgloss.Color // title
	Secondary lipgloss.Color // values
	Warning   lipgloss.Color // closed state, missing values
	Success   lipgloss.Color // open state
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color // labels, sources
	Border    lipgloss.Color // section rules
}

// DarkTheme is the default theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Warning:   lipgloss.Color("#f5a742"),
		Success:   lipgloss.Color("#7fd88f"),
		Error:     lipgloss.Color("#e06c75"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Border:    lipgloss.Color("#484848"),
	}
}

// LightTheme suits bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Warning:   lipgloss.Color("#bf8700"),
		Success:   lipgloss.Color("#116329"),
		Error:     lipgloss.Color("#cf222e"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
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

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	open   lipgloss.Style
	closed lipgloss.Style
	unset  lipgloss.Style
	err    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header: lipgloss.NewStyle().Foreground(t.Border),
		label:  lipgloss.NewStyle().Foreground(t.TextMuted),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		open:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		closed: lipgloss.NewStyle().Foreground(t.Warning),
		unset:  lipgloss.NewStyle().Italic(true).Foreground(t.TextMuted),
		err:    lipgloss.NewStyle().Foreground(t.Error),
	}
}
