package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered style shared by the player bar and the
// playlist panel. The player bar is drawn focused while audio is playing.
func PanelStyle(active bool) lipgloss.Style {
	border := T().Border
	if active {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
