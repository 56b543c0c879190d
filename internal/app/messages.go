package app

import tea "github.com/charmbracelet/bubbletea"

// PlaybackMessage is implemented by messages reporting playback commands.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// TogglePlayResultMsg reports the outcome of a play/pause request.
type TogglePlayResultMsg struct {
	Err error
}

func (TogglePlayResultMsg) playbackMessage() {}
