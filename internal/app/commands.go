package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// TogglePlayCmd toggles playback off the UI goroutine.
func TogglePlayCmd(p Player) tea.Cmd {
	return func() tea.Msg {
		return TogglePlayResultMsg{Err: p.TogglePlay(context.Background())}
	}
}
