package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/liveradio/internal/audio"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
	"github.com/llehouerou/liveradio/internal/ui/feed"
	"github.com/llehouerou/liveradio/internal/ui/headerbar"
	"github.com/llehouerou/liveradio/internal/ui/playerbar"
	"github.com/llehouerou/liveradio/internal/ui/testutil"
)

type emptyFetcher struct{}

func (emptyFetcher) Fetch(context.Context) (*nowplaying.Status, error) {
	return nil, nowplaying.ErrNotConfigured
}

func newTestPlayer(t *testing.T) (*playback.Synchronizer, *audio.Mock) {
	t.Helper()
	out := audio.NewMock()
	player := playback.New(func() (audio.Output, error) { return out, nil }, emptyFetcher{}, playback.Config{})
	t.Cleanup(func() { _ = player.Close() })
	return player, out
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNew_MountsRequestedViews(t *testing.T) {
	player, _ := newTestPlayer(t)

	m := New(player, Options{PlayerMode: playerbar.ModeExpanded, ShowPlaylist: true})
	defer m.Close()

	assert.True(t, m.PlaylistVisible)
	assert.True(t, m.Playlist.Active())
	assert.Equal(t, playerbar.ModeExpanded, m.PlayerBar.Mode())
	assert.NotNil(t, m.Init())
}

func TestUpdate_WindowSizeResizesPlaylist(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{ShowPlaylist: true})
	defer m.Close()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	assert.Equal(t, 80, m.Playlist.Width())
	assert.Equal(t, m.PlaylistHeight(), m.Playlist.Height())
	assert.LessOrEqual(t, m.PlaylistHeight(), 30-headerbar.Height-m.PlayerBar.Height())
}

func TestKeys_Volume(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{})
	defer m.Close()

	start := player.Snapshot().Volume

	m, _ = update(t, m, testutil.Key("+"))
	assert.InDelta(t, start+VolumeStep, player.Snapshot().Volume, 1e-9)

	m, _ = update(t, m, testutil.Key("-"))
	m, _ = update(t, m, testutil.Key("-"))
	assert.InDelta(t, start-VolumeStep, player.Snapshot().Volume, 1e-9)

	_, _ = update(t, m, testutil.Key("m"))
	assert.True(t, player.Snapshot().Muted)
}

func TestKeys_SpaceTogglesPlay(t *testing.T) {
	player, out := newTestPlayer(t)
	m := New(player, Options{})
	defer m.Close()

	m, cmd := update(t, m, testutil.Key(" "))
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(TogglePlayResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Err)
	assert.Equal(t, 1, out.PlayCalls())
	assert.True(t, player.Snapshot().IsLoading)

	m, _ = update(t, m, msg)
	assert.Empty(t, m.ErrorMsg)
}

func TestPlaybackMessage_ErrorShownOnce(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{})
	defer m.Close()

	m, _ = update(t, m, TogglePlayResultMsg{Err: errors.New("boom")})
	assert.Contains(t, m.ErrorMsg, "boom")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Contains(t, m.View(), "boom")
}

func TestKeys_PlaylistToggleReleasesSubscription(t *testing.T) {
	player, out := newTestPlayer(t)
	m := New(player, Options{ShowPlaylist: true})

	require.NoError(t, player.TogglePlay(context.Background()))

	m, _ = update(t, m, testutil.Key("p"))
	assert.False(t, m.PlaylistVisible)
	assert.Zero(t, out.PauseCalls(), "player bar still subscribed")

	m, cmd := update(t, m, testutil.Key("p"))
	assert.True(t, m.PlaylistVisible)
	assert.True(t, m.Playlist.Active())
	require.NotNil(t, cmd)
	_, ok := cmd().(feed.SnapshotMsg)
	assert.True(t, ok)

	_, cmd = update(t, m, testutil.Key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, out.PauseCalls(), "last view gone while loading pauses")
}

func TestKeys_ToggleDisplayMode(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{ShowPlaylist: true})
	defer m.Close()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	before := m.PlaylistHeight()
	m, _ = update(t, m, testutil.Key("v"))

	assert.Equal(t, playerbar.ModeExpanded, m.PlayerBar.Mode())
	assert.Equal(t, before-(m.PlayerBar.Height()-playerbar.Height(playerbar.ModeCompact)), m.PlaylistHeight())
	assert.Equal(t, m.PlaylistHeight(), m.Playlist.Height())
}

func TestKeys_UnknownKeyIgnored(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{})
	defer m.Close()

	_, cmd := update(t, m, testutil.Key("z"))
	assert.Nil(t, cmd)
}

func TestView(t *testing.T) {
	player, _ := newTestPlayer(t)
	m := New(player, Options{ShowPlaylist: true})
	defer m.Close()

	assert.Empty(t, m.View(), "nothing before the first size")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	view := m.View()

	assert.Contains(t, view, "Playlist")
	assert.Contains(t, view, nowplaying.FallbackNowPlaying)
	assert.LessOrEqual(t, testutil.MaxLineWidth(view), 80)
}
