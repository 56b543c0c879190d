package playback

import (
	"time"

	"github.com/llehouerou/liveradio/internal/audio"
	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// watchOutput applies output events until the output or the
// synchronizer is closed.
func (s *Synchronizer) watchOutput(out audio.Output) {
	defer s.wg.Done()

	events := out.Events()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleEvent(ev)
		}
	}
}

// handleEvent updates playback state from what the output reports.
func (s *Synchronizer) handleEvent(ev audio.Event) {
	s.mu.Lock()
	heard, ok := s.applyEventLocked(ev)
	s.mu.Unlock()

	if ok {
		s.recordHeard(heard)
	}
}

// applyEventLocked applies ev and returns a song to add to the listening
// history, if any.
func (s *Synchronizer) applyEventLocked(ev audio.Event) (nowplaying.Song, bool) {
	if s.closed {
		return nowplaying.Song{}, false
	}
	s.log.Debug().Stringer(logging.FieldEvent, ev.Type).Msg("output event")

	var heard nowplaying.Song
	var record bool

	switch ev.Type {
	case audio.EventLoadStart, audio.EventWaiting:
		s.loading = true
	case audio.EventCanPlay:
		s.loading = false
	case audio.EventPlaying:
		wasPlaying := s.playing
		s.playing = true
		s.loading = false
		s.pending = false
		s.errMsg = ""
		s.disarmGuardLocked()
		if !wasPlaying {
			s.resyncTicker()
			heard, record = s.takeHeardLocked()
		}
	case audio.EventPause:
		s.playing = false
		s.loading = false
		s.pending = false
		s.disarmGuardLocked()
	case audio.EventError:
		s.log.Warn().Err(ev.Err).Msg("stream error")
		s.playing = false
		s.loading = false
		s.pending = false
		s.errMsg = errmsg.MsgStreamError
		s.disarmGuardLocked()
	}

	s.broadcastLocked()
	return heard, record
}

// takeHeardLocked returns the current song once per distinct track, and
// only while audio is playing.
func (s *Synchronizer) takeHeardLocked() (nowplaying.Song, bool) {
	if s.history == nil || !s.playing {
		return nowplaying.Song{}, false
	}
	song, ok := s.status.CurrentSong()
	if !ok || song.Key() == s.lastHeard {
		return nowplaying.Song{}, false
	}
	s.lastHeard = song.Key()
	return song, true
}

// recordHeard writes to the history store. It must run without s.mu held.
func (s *Synchronizer) recordHeard(song nowplaying.Song) {
	if err := s.history.RecordHeard(song, time.Now()); err != nil {
		s.log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpHistorySave)).Msg("record heard track")
	}
}
