package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/liveradio/internal/keymap"
	"github.com/llehouerou/liveradio/internal/ui/headerbar"
)

// PlaylistHeight returns the height left for the playlist panel.
func (m *Model) PlaylistHeight() int {
	height := m.Height
	height -= headerbar.Height
	height -= m.PlayerBar.Height()
	height -= m.helpHeight()
	if m.ErrorMsg != "" {
		height--
	}
	return max(height, 0)
}

func (m *Model) helpHeight() int {
	return lipgloss.Height(m.Help.View(keymap.Help{}))
}

// ResizeComponents propagates the window size to the view components.
func (m *Model) ResizeComponents() {
	m.Help.Width = m.Width
	m.PlayerBar.SetWidth(m.Width)
	if m.PlaylistVisible {
		m.Playlist.SetSize(m.Width, m.PlaylistHeight())
	}
}
