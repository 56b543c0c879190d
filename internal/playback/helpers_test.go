package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/liveradio/internal/audio"
	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// fakeFetcher returns a configurable status.
type fakeFetcher struct {
	mu     sync.Mutex
	status *nowplaying.Status
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(_ context.Context) (*nowplaying.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.status == nil {
		return nil, nowplaying.ErrNotConfigured
	}
	cp := *f.status
	return &cp, nil
}

func (f *fakeFetcher) set(status *nowplaying.Status, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.err = err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func statusWith(id, artist, title string, elapsed, duration int) *nowplaying.Status {
	return &nowplaying.Status{
		Station: nowplaying.Station{Name: "Radio Test"},
		NowPlaying: nowplaying.CurrentTrack{
			Song:     nowplaying.Song{ID: id, Artist: artist, Title: title},
			Elapsed:  elapsed,
			Duration: duration,
		},
		IsOnline: true,
	}
}

// testConfig keeps polling out of the way unless a test needs it.
func testConfig() Config {
	return Config{PollInterval: time.Hour, MaxPollInterval: time.Hour}
}

type harness struct {
	sync      *Synchronizer
	output    *audio.Mock
	fetcher   *fakeFetcher
	factories int
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		output:  audio.NewMock(),
		fetcher: &fakeFetcher{},
	}
	factory := func() (audio.Output, error) {
		h.factories++
		return h.output, nil
	}
	h.sync = New(factory, h.fetcher, cfg, opts...)
	t.Cleanup(func() { _ = h.sync.Close() })
	return h
}

// latest returns the pending snapshot of sub, failing if there is none.
func latest(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap := <-sub.Updates:
		return snap
	default:
		t.Fatal("no pending snapshot")
		return Snapshot{}
	}
}

// startPlaying toggles play and simulates the output reaching Playing.
func (h *harness) startPlaying(t *testing.T) {
	t.Helper()
	if err := h.sync.TogglePlay(context.Background()); err != nil {
		t.Fatalf("TogglePlay() error = %v", err)
	}
	h.output.Emit(audio.Event{Type: audio.EventPlaying})
}
