package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/liveradio/internal/keymap"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/ui/playlist"
)

// handleKeyMsg resolves the key to an action and runs it.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.Keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	m.log.Debug().Str(logging.FieldOp, string(action)).Msg("key")

	switch action {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit

	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
		m.ResizeComponents()

	case keymap.ActionPlayPause:
		m.ErrorMsg = ""
		return m, TogglePlayCmd(m.Player)

	case keymap.ActionVolumeUp:
		m.Player.AdjustVolume(VolumeStep)

	case keymap.ActionVolumeDown:
		m.Player.AdjustVolume(-VolumeStep)

	case keymap.ActionToggleMute:
		m.Player.ToggleMute()

	case keymap.ActionRefresh:
		m.Player.Refresh()

	case keymap.ActionTogglePlaylist:
		return m.togglePlaylist()

	case keymap.ActionTogglePlayerDisplay:
		m.PlayerBar.ToggleMode()
		m.ResizeComponents()
	}

	return m, nil
}

// togglePlaylist unmounts the panel, releasing its subscription, or mounts
// a fresh one with a new subscription.
func (m Model) togglePlaylist() (tea.Model, tea.Cmd) {
	if m.PlaylistVisible {
		m.Playlist.Close()
		m.PlaylistVisible = false
		m.ResizeComponents()
		return m, nil
	}

	m.Playlist = playlist.New(m.Player)
	m.PlaylistVisible = true
	m.ResizeComponents()
	return m, m.Playlist.Init()
}
