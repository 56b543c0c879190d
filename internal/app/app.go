// Package app is the root bubbletea model of the radio player.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/keymap"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui/feed"
	"github.com/llehouerou/liveradio/internal/ui/playerbar"
	"github.com/llehouerou/liveradio/internal/ui/playlist"
)

// VolumeStep is the volume change per +/- key press.
const VolumeStep = 0.05

// Player is what the application drives. *playback.Synchronizer
// implements it.
type Player interface {
	feed.Source
	Snapshot() playback.Snapshot
	TogglePlay(ctx context.Context) error
	AdjustVolume(delta float64)
	ToggleMute()
	Refresh()
}

var _ Player = (*playback.Synchronizer)(nil)

// Options configure the initial layout.
type Options struct {
	PlayerMode   playerbar.DisplayMode
	ShowPlaylist bool
}

// Model is the root application model containing all state.
type Model struct {
	Player          Player
	PlayerBar       playerbar.Model
	Playlist        playlist.Model
	PlaylistVisible bool
	Keys            *keymap.Resolver
	Help            help.Model
	ShowHelp        bool
	ErrorMsg        string
	Width           int
	Height          int

	log zerolog.Logger
}

// New mounts the player bar, and the playlist panel when requested.
func New(p Player, opts Options) Model {
	m := Model{
		Player:    p,
		PlayerBar: playerbar.New(p, opts.PlayerMode),
		Keys:      keymap.NewResolver(keymap.All),
		Help:      help.New(),
		log:       logging.Component("app"),
	}
	if opts.ShowPlaylist {
		m.Playlist = playlist.New(p)
		m.PlaylistVisible = true
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.PlayerBar.Init()}
	if m.PlaylistVisible {
		cmds = append(cmds, m.Playlist.Init())
	}
	return tea.Batch(cmds...)
}

// Close releases every view subscription.
func (m *Model) Close() {
	m.PlayerBar.Close()
	m.Playlist.Close()
}
