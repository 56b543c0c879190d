package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand colors; the station name is drawn as a gradient between them
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Live    lipgloss.Color // Red dot for live DJ sets
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base          lipgloss.Style
	Muted         lipgloss.Style
	Subtle        lipgloss.Style
	Title         lipgloss.Style // Song title
	Artist        lipgloss.Style
	Live          lipgloss.Style
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
	Time          lipgloss.Style
	Error         lipgloss.Style
	Warning       lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Live:    lipgloss.Color("#ff5555"),
	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:          base,
		Muted:         lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:        lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:         base.Bold(true),
		Artist:        lipgloss.NewStyle().Foreground(t.Primary),
		Live:          lipgloss.NewStyle().Foreground(t.Live).Bold(true),
		ProgressFull:  lipgloss.NewStyle().Foreground(t.Primary),
		ProgressEmpty: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Time:          lipgloss.NewStyle().Foreground(t.FgMuted),
		Error:         lipgloss.NewStyle().Foreground(t.Error),
		Warning:       lipgloss.NewStyle().Foreground(t.Warning),
	}
}
