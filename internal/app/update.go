package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/ui/feed"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ResizeComponents()
		return m, nil

	case feed.SnapshotMsg, feed.ClosedMsg, spinner.TickMsg:
		return m.forward(msg)

	case PlaybackMessage:
		return m.handlePlaybackMessage(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// forward hands subscription traffic to the view components. Each one
// ignores messages for subscriptions it does not own.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	var cmd tea.Cmd
	m.PlayerBar, cmd = m.PlayerBar.Update(msg)
	cmds = append(cmds, cmd)

	if m.PlaylistVisible {
		m.Playlist, cmd = m.Playlist.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handlePlaybackMessage(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TogglePlayResultMsg:
		// The snapshot already carries the playback error; this only
		// surfaces failures outside the player, such as a closed player.
		if msg.Err != nil && m.Player.Snapshot().Error == "" {
			m.ErrorMsg = errmsg.Format(errmsg.OpStreamPlay, msg.Err)
		}
	}
	return m, nil
}
