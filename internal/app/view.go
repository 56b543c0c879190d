package app

import (
	"strings"

	"github.com/llehouerou/liveradio/internal/keymap"
	"github.com/llehouerou/liveradio/internal/ui/headerbar"
	"github.com/llehouerou/liveradio/internal/ui/playerbar"
	"github.com/llehouerou/liveradio/internal/ui/render"
	"github.com/llehouerou/liveradio/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}

	parts := []string{headerbar.Render(headerbar.Toggles{
		Playlist: m.PlaylistVisible,
		Expanded: m.PlayerBar.Mode() == playerbar.ModeExpanded,
		Help:     m.ShowHelp,
	}, m.Width)}

	if m.PlaylistVisible {
		if panel := m.Playlist.View(); panel != "" {
			parts = append(parts, panel)
		}
	}

	parts = append(parts, m.PlayerBar.View())

	if m.ErrorMsg != "" {
		parts = append(parts, styles.T().S().Error.Render(render.Truncate(m.ErrorMsg, m.Width)))
	}

	parts = append(parts, m.Help.View(keymap.Help{}))

	return strings.Join(parts, "\n")
}
