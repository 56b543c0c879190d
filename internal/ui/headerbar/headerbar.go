package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Toggles reports which view toggles are on.
type Toggles struct {
	Playlist bool
	Expanded bool
	Help     bool
}

// tab represents a header bar toggle.
type tab struct {
	key  string
	name string
	on   bool
}

// Styles
var (
	activeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	activeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	inactiveKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	inactiveNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render returns the header bar string for the given width, highlighting
// the toggles that are on.
func Render(t Toggles, width int) string {
	if width < 20 {
		return ""
	}

	tabs := []tab{
		{"p", "Playlist", t.Playlist},
		{"v", "Expanded", t.Expanded},
		{"?", "Help", t.Help},
	}

	parts := make([]string, 0, len(tabs))
	separator := separatorStyle.Render(" │ ")

	for _, tb := range tabs {
		keyStyle, nameStyle := inactiveKeyStyle, inactiveNameStyle
		if tb.on {
			keyStyle, nameStyle = activeKeyStyle, activeNameStyle
		}
		parts = append(parts, keyStyle.Render(tb.key)+" "+nameStyle.Render(tb.name))
	}

	content := strings.Join(parts, separator)

	// Center the content
	contentWidth := lipgloss.Width(content)
	if contentWidth < width {
		padLeft := (width - contentWidth) / 2
		content = strings.Repeat(" ", padLeft) + content
	}

	return content
}
