// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause  Action = "play_pause"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"
	ActionRefresh    Action = "refresh" // poll the status endpoint now

	// View actions
	ActionTogglePlaylist      Action = "toggle_playlist"
	ActionTogglePlayerDisplay Action = "toggle_player_display"
)
