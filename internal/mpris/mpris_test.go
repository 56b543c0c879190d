//go:build linux

package mpris

import (
	"context"
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
)

type fakePlayer struct {
	snap    playback.Snapshot
	toggles int
	volume  float64
}

func (f *fakePlayer) Snapshot() playback.Snapshot { return f.snap }

func (f *fakePlayer) TogglePlay(_ context.Context) error {
	f.toggles++
	return nil
}

func (f *fakePlayer) SetVolume(level float64) { f.volume = level }

func TestPlaybackStatus(t *testing.T) {
	tests := []struct {
		state playback.State
		want  types.PlaybackStatus
	}{
		{playback.StatePlaying, types.PlaybackStatusPlaying},
		{playback.StateLoading, types.PlaybackStatusPlaying},
		{playback.StatePaused, types.PlaybackStatusPaused},
		{playback.StateIdle, types.PlaybackStatusStopped},
		{playback.StateErrored, types.PlaybackStatusStopped},
	}

	for _, tt := range tests {
		if got := playbackStatus(tt.state); got != tt.want {
			t.Errorf("playbackStatus(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestPlayerAdapter_PlayPauseOnlyToggleWhenNeeded(t *testing.T) {
	f := &fakePlayer{snap: playback.Snapshot{State: playback.StateIdle}}
	p := &playerAdapter{player: f}

	require.NoError(t, p.Pause())
	require.NoError(t, p.Stop())
	assert.Equal(t, 0, f.toggles, "nothing to pause")

	require.NoError(t, p.Play())
	assert.Equal(t, 1, f.toggles)

	f.snap.State = playback.StatePlaying
	require.NoError(t, p.Play())
	assert.Equal(t, 1, f.toggles, "already playing")

	require.NoError(t, p.Pause())
	assert.Equal(t, 2, f.toggles)

	require.NoError(t, p.PlayPause())
	assert.Equal(t, 3, f.toggles)
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	f := &fakePlayer{snap: playback.Snapshot{
		Elapsed: 42,
		Status: &nowplaying.Status{NowPlaying: nowplaying.CurrentTrack{
			Duration: 180,
			Song: nowplaying.Song{
				ID: "abc", Artist: "Artist", Title: "Song", Album: "Album",
				Genre: "Pop", Art: "https://radio.example/art.jpg",
			},
		}},
	}}
	p := &playerAdapter{player: f}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Song", meta.Title)
	assert.Equal(t, []string{"Artist"}, meta.Artist)
	assert.Equal(t, "Album", meta.Album)
	assert.Equal(t, []string{"Pop"}, meta.Genre)
	assert.Equal(t, "https://radio.example/art.jpg", meta.ArtUrl)
	assert.Equal(t, types.Microseconds(180_000_000), meta.Length)
	assert.Equal(t, formatTrackID("abc"), string(meta.TrackId))

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(42_000_000), pos)
}

func TestPlayerAdapter_MetadataWithoutStatus(t *testing.T) {
	p := &playerAdapter{player: &fakePlayer{}}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
}

func TestPlayerAdapter_Volume(t *testing.T) {
	f := &fakePlayer{snap: playback.Snapshot{Volume: 0.7}}
	p := &playerAdapter{player: f}

	v, err := p.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.7, v, 1e-9)

	require.NoError(t, p.SetVolume(0.2))
	assert.InDelta(t, 0.2, f.volume, 1e-9)
}
