package playback

import (
	"time"

	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// Snapshot is the combined playback and station state delivered to
// subscribers.
type Snapshot struct {
	State     State
	IsPlaying bool
	IsLoading bool
	Volume    float64 // 0.0 to 1.0
	Muted     bool

	// Error is the playback error shown to the listener, empty if none.
	Error string
	// StatusError is set while the status endpoint is failing. The last
	// good Status is kept alongside it.
	StatusError string

	// Elapsed is the local estimate of seconds into the current track.
	Elapsed int

	// Status is the last successfully fetched station status, nil before
	// the first success. It is replaced on every poll, never mutated.
	Status   *nowplaying.Status
	LastPoll time.Time
}

// CurrentSong returns the song on air, if known.
func (s Snapshot) CurrentSong() (nowplaying.Song, bool) {
	return s.Status.CurrentSong()
}

// Duration returns the current track's duration in seconds, 0 if unknown.
func (s Snapshot) Duration() int {
	if s.Status == nil {
		return 0
	}
	return s.Status.NowPlaying.Duration
}

// Progress returns Elapsed/Duration in [0, 1].
func (s Snapshot) Progress() float64 {
	d := s.Duration()
	if d <= 0 {
		return 0
	}
	return min(float64(s.Elapsed)/float64(d), 1)
}
