package lastfm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/nowplaying"
	"github.com/llehouerou/liveradio/internal/playback"
)

const (
	// Tracks of 30 seconds or less are never scrobbled.
	minScrobbleDuration = 30 * time.Second
	// A track counts once heard for half its length or this long.
	maxScrobbleWait = 4 * time.Minute
)

// API is the part of Client the Scrobbler needs.
type API interface {
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

var _ API = (*Client)(nil)

// Scrobbler reports the tracks the listener actually hears. A track airs
// whether or not anyone listens, so only time spent playing counts.
type Scrobbler struct {
	api   API
	queue Queue // may be nil
	log   zerolog.Logger

	current *ScrobbleState
	playing bool
	since   time.Time
}

// NewScrobbler creates a scrobbler. Failed scrobbles go to queue when it
// is non-nil.
func NewScrobbler(api API, queue Queue) *Scrobbler {
	return &Scrobbler{
		api:   api,
		queue: queue,
		log:   logging.Component("lastfm"),
	}
}

// Run consumes snapshots from sub until it is closed or ctx is done, then
// submits the track in progress if it was heard long enough.
func (s *Scrobbler) Run(ctx context.Context, sub *playback.Subscription) {
	defer sub.Unsubscribe()

	s.retry()
	ticker := time.NewTicker(RetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.finish(time.Now())
			return
		case <-sub.Done:
			s.finish(time.Now())
			return
		case <-ticker.C:
			s.retry()
		case snap := <-sub.Updates:
			s.handle(snap, time.Now())
		}
	}
}

// Current returns a copy of the tracked state, nil if no track is tracked.
func (s *Scrobbler) Current() *ScrobbleState {
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *Scrobbler) handle(snap playback.Snapshot, now time.Time) {
	s.accumulate(now)
	s.playing = snap.IsPlaying

	if song, ok := snap.CurrentSong(); ok && (s.current == nil || s.current.Key != song.Key()) {
		s.finish(now)
		if scrobbleable(song) {
			s.current = &ScrobbleState{
				Key:   song.Key(),
				Track: trackFromSong(song, snap.Duration()),
			}
		}
	}

	if s.current == nil || !s.playing {
		return
	}
	if s.current.Track.Timestamp.IsZero() {
		s.current.Track.Timestamp = now
	}
	if !s.current.NowPlayingSent {
		s.current.NowPlayingSent = true
		if err := s.api.UpdateNowPlaying(s.current.Track); err != nil {
			s.log.Warn().Err(err).
				Str(logging.FieldOp, string(errmsg.OpNowPlaying)).
				Str(logging.FieldTrack, s.current.Key).
				Msg("now playing")
		}
	}
}

// accumulate credits the time since the last snapshot to the current
// track if the listener was playing.
func (s *Scrobbler) accumulate(now time.Time) {
	if s.playing && s.current != nil && !s.since.IsZero() {
		s.current.Listened += now.Sub(s.since)
	}
	s.since = now
}

// finish submits the current track if eligible and stops tracking it.
func (s *Scrobbler) finish(now time.Time) {
	s.accumulate(now)
	cur := s.current
	s.current = nil
	if cur == nil || cur.Scrobbled || !eligible(cur) {
		return
	}
	cur.Scrobbled = true

	err := s.api.Scrobble(cur.Track)
	if err == nil {
		s.log.Debug().Str(logging.FieldTrack, cur.Key).Msg("scrobbled")
		return
	}

	s.log.Warn().Err(err).
		Str(logging.FieldOp, string(errmsg.OpScrobble)).
		Str(logging.FieldTrack, cur.Key).
		Msg("scrobble failed, queued")
	if s.queue != nil {
		if qerr := s.queue.AddPendingScrobble(pendingFromTrack(cur.Track)); qerr != nil {
			s.log.Error().Err(qerr).Msg("queue scrobble")
		}
	}
}

func (s *Scrobbler) retry() {
	if s.queue == nil {
		return
	}
	if err := s.queue.DeleteOldPendingScrobbles(pendingMaxAge); err != nil {
		s.log.Warn().Err(err).Msg("prune pending scrobbles")
	}
	res, err := RetryPending(s.api, s.queue)
	if err != nil {
		s.log.Warn().Err(err).Msg("retry pending scrobbles")
		return
	}
	if res.Succeeded > 0 || res.Failed > 0 {
		s.log.Info().Int("succeeded", res.Succeeded).Int("failed", res.Failed).Msg("retried pending scrobbles")
	}
}

// eligible applies the Last.fm scrobbling rules to a heard track.
func eligible(st *ScrobbleState) bool {
	d := st.Track.Duration
	if d <= minScrobbleDuration {
		return false
	}
	return st.Listened >= min(d/2, maxScrobbleWait)
}

func scrobbleable(song nowplaying.Song) bool {
	return song.Artist != "" && song.Title != ""
}

func trackFromSong(song nowplaying.Song, durationSecs int) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:   song.Artist,
		Track:    song.Title,
		Album:    song.Album,
		Duration: time.Duration(durationSecs) * time.Second,
	}
}
