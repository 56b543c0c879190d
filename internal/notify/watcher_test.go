package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
)

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []Notification
	err   error
	count uint32
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.count++
	f.sent = append(f.sent, n)
	return f.count + 100, nil
}

func (f *fakeNotifier) Close(_ uint32) error { return nil }

func snapshot(playing bool, song nowplaying.Song) playback.Snapshot {
	return playback.Snapshot{
		IsPlaying: playing,
		Status: &nowplaying.Status{
			Station:    nowplaying.Station{Name: "Radio Test"},
			NowPlaying: nowplaying.CurrentTrack{Song: song, Duration: 180},
		},
	}
}

func TestWatcher_NotifiesOncePerTrack(t *testing.T) {
	n := &fakeNotifier{}
	w := NewWatcher(n, nil)
	ctx := context.Background()
	one := nowplaying.Song{ID: "1", Artist: "Artist", Title: "Song", Album: "Album"}
	two := nowplaying.Song{ID: "2", Title: "Jingle"}

	w.handle(ctx, snapshot(true, one))
	w.handle(ctx, snapshot(true, one))
	w.handle(ctx, snapshot(true, two))

	require.Len(t, n.sent, 2)
	assert.Equal(t, "Song", n.sent[0].Title)
	assert.Equal(t, "Artist\nAlbum\nRadio Test", n.sent[0].Body)
	assert.Equal(t, uint32(0), n.sent[0].ReplacesID)

	assert.Equal(t, "Jingle", n.sent[1].Title)
	assert.Equal(t, "Radio Test", n.sent[1].Body)
	assert.Equal(t, uint32(101), n.sent[1].ReplacesID, "replaces the previous notification")
}

func TestWatcher_SilentWhenNotPlaying(t *testing.T) {
	n := &fakeNotifier{}
	w := NewWatcher(n, nil)

	w.handle(context.Background(), snapshot(false, nowplaying.Song{ID: "1", Title: "Song"}))
	w.handle(context.Background(), playback.Snapshot{IsPlaying: true})

	assert.Empty(t, n.sent)
}

func TestWatcher_NotifyErrorIsLogged(t *testing.T) {
	n := &fakeNotifier{err: errors.New("dbus gone")}
	w := NewWatcher(n, nil)

	assert.NotPanics(t, func() {
		w.handle(context.Background(), snapshot(true, nowplaying.Song{ID: "1", Title: "Song"}))
	})
	assert.Equal(t, uint32(0), w.lastID)
}

func TestTrackNotification_Fallbacks(t *testing.T) {
	n := trackNotification(nowplaying.Song{Artist: "Only Artist"}, "")
	assert.Equal(t, "Only Artist", n.Title)
	assert.Empty(t, n.Body)
	assert.Equal(t, UrgencyLow, n.Urgency)
}
