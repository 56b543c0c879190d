package playback

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// pollLoop fetches the status immediately, then every PollInterval,
// backing off while the endpoint keeps failing.
func (s *Synchronizer) pollLoop() {
	defer s.wg.Done()

	backoff := nowplaying.Backoff{Interval: s.cfg.PollInterval, Max: s.cfg.MaxPollInterval}
	failures := 0

	for {
		if s.poll() {
			failures = 0
		} else {
			failures++
		}

		delay := backoff.Next(failures)
		if failures > 1 {
			s.log.Debug().Int(logging.FieldFailures, failures).Dur(logging.FieldDelay, delay).Msg("status poll backing off")
		}

		timer := time.NewTimer(delay)
		select {
		case <-s.done:
			timer.Stop()
			return
		case <-s.refreshCh:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// poll fetches the status once. It reports whether the fetch succeeded.
func (s *Synchronizer) poll() bool {
	status, err := s.fetcher.Fetch(s.ctx)

	s.mu.Lock()
	heard, record := s.applyStatusLocked(status, err)
	s.mu.Unlock()

	if record {
		s.recordHeard(heard)
	}
	return err == nil
}

func (s *Synchronizer) applyStatusLocked(status *nowplaying.Status, err error) (nowplaying.Song, bool) {
	if s.closed {
		return nowplaying.Song{}, false
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpStatusFetch)).Msg("status poll failed")
		}
		// Keep the last good status.
		s.statusErr = errmsg.MsgStatusFailed
		s.broadcastLocked()
		return nowplaying.Song{}, false
	}

	s.status = status
	s.statusErr = ""
	s.lastPoll = time.Now()
	s.elapsed = clampElapsed(status.NowPlaying.Elapsed, status.NowPlaying.Duration)
	heard, record := s.takeHeardLocked()
	s.resyncTicker()
	s.broadcastLocked()
	return heard, record
}

// resyncTicker realigns the elapsed ticker with the latest update.
func (s *Synchronizer) resyncTicker() {
	select {
	case s.resyncCh <- struct{}{}:
	default:
	}
}

// tickLoop advances the elapsed estimate once per second.
func (s *Synchronizer) tickLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.resyncCh:
			ticker.Reset(time.Second)
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Synchronizer) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || s.status == nil {
		return
	}
	if _, ok := s.status.CurrentSong(); !ok {
		return
	}
	if s.elapsed >= s.status.NowPlaying.Duration {
		return
	}
	s.elapsed++
	s.broadcastLocked()
}

func clampElapsed(elapsed, duration int) int {
	return max(0, min(elapsed, duration))
}
