// Package playback keeps the shared audio output, the station status and
// every view subscriber in sync.
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/audio"
	"github.com/llehouerou/liveradio/internal/errmsg"
	"github.com/llehouerou/liveradio/internal/logging"
	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// ErrClosed is returned by operations on a closed Synchronizer.
var ErrClosed = errors.New("synchronizer closed")

// OutputFactory builds the audio output. It is called at most once
// successfully per Synchronizer.
type OutputFactory func() (audio.Output, error)

// Synchronizer owns the single audio output and the station status, and
// broadcasts their combined state to subscribers.
type Synchronizer struct {
	mu sync.Mutex

	newOutput OutputFactory
	fetcher   nowplaying.Fetcher
	cfg       Config
	volumes   VolumeStore
	history   HistoryRecorder
	log       zerolog.Logger

	output       audio.Output
	outputFailed bool

	// Playback, driven by output events
	playing   bool
	loading   bool
	pending   bool // a Play attempt has not reached Playing yet
	attempted bool // Play was requested at least once
	errMsg    string

	// Volume
	volume      float64
	lastAudible float64

	// Station status
	status    *nowplaying.Status
	statusErr string
	elapsed   int
	lastPoll  time.Time
	lastHeard string // key of the last song handed to history

	// Slow-stream guard
	guard    *time.Timer
	guardGen uint64

	subs    map[*Subscription]struct{}
	counted int

	refreshCh chan struct{}
	resyncCh  chan struct{}

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	closed  bool
}

// New creates a synchronizer. Nothing runs until Start or the first
// Subscribe.
func New(newOutput OutputFactory, fetcher nowplaying.Fetcher, cfg Config, opts ...Option) *Synchronizer {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Synchronizer{
		newOutput:   newOutput,
		fetcher:     fetcher,
		cfg:         cfg,
		log:         logging.Component("playback"),
		volume:      cfg.DefaultVolume,
		lastAudible: cfg.DefaultVolume,
		subs:        make(map[*Subscription]struct{}),
		refreshCh:   make(chan struct{}, 1),
		resyncCh:    make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restoreVolume()
	return s
}

func (s *Synchronizer) restoreVolume() {
	if s.volumes == nil {
		return
	}
	saved, ok, err := s.volumes.LoadVolume()
	if err != nil {
		s.log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpVolumeLoad)).Msg("using default volume")
		return
	}
	if !ok {
		return
	}
	s.volume = clamp01(saved.Volume)
	if saved.Muted {
		s.volume = 0
	}
	if saved.LastAudible > 0 {
		s.lastAudible = clamp01(saved.LastAudible)
	} else if s.volume > 0 {
		s.lastAudible = s.volume
	}
}

// Start launches status polling and the elapsed-time ticker.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.closed {
		return
	}
	s.started = true

	s.wg.Add(2)
	go s.pollLoop()
	go s.tickLoop()
}

// Subscribe registers a view. The first view creates the audio output.
// The current snapshot is delivered immediately.
func (s *Synchronizer) Subscribe() *Subscription {
	return s.subscribe(true)
}

// Watch registers an observer that receives the same snapshots as a view
// but never keeps audio alive and never creates the output.
func (s *Synchronizer) Watch() *Subscription {
	return s.subscribe(false)
}

func (s *Synchronizer) subscribe(counted bool) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscription(s, counted)
	if s.closed {
		sub.close()
		return sub
	}

	s.subs[sub] = struct{}{}
	if counted {
		s.counted++
		_, _ = s.ensureOutputLocked()
	}
	sub.send(s.snapshotLocked())
	return sub
}

func (s *Synchronizer) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	sub.close()

	if !sub.counted {
		return
	}
	s.counted--
	if s.counted > 0 || s.output == nil || (!s.playing && !s.loading && !s.pending) {
		return
	}

	// Last view gone: silence the output but keep everything else.
	s.log.Debug().Msg("last subscriber left, pausing")
	s.disarmGuardLocked()
	s.loading = false
	s.pending = false
	s.output.Pause()
	s.broadcastLocked()
}

// ensureOutputLocked creates the output on first use. A failed factory is
// retried on the next call.
func (s *Synchronizer) ensureOutputLocked() (audio.Output, error) {
	if s.output != nil {
		return s.output, nil
	}

	out, err := s.newOutput()
	if err != nil {
		s.log.Error().Err(err).Str(logging.FieldOp, string(errmsg.OpOutputOpen)).Msg("create output")
		s.outputFailed = true
		s.errMsg = errmsg.Format(errmsg.OpOutputOpen, err)
		return nil, err
	}
	if s.outputFailed {
		s.outputFailed = false
		s.errMsg = ""
	}

	s.output = out
	out.SetVolume(s.volume)

	s.wg.Add(1)
	go s.watchOutput(out)
	return out, nil
}

// TogglePlay starts the stream, or pauses it if it is playing or loading.
func (s *Synchronizer) TogglePlay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	out, err := s.ensureOutputLocked()
	if err != nil {
		s.broadcastLocked()
		return err
	}

	switch {
	case s.playing:
		out.Pause()
		return nil
	case s.loading || s.pending:
		// Cancel the pending attempt.
		s.disarmGuardLocked()
		s.loading = false
		s.pending = false
		out.Pause()
		s.broadcastLocked()
		return nil
	}

	s.errMsg = ""
	s.loading = true
	s.pending = true
	s.attempted = true
	s.broadcastLocked()

	if err := out.Play(ctx); err != nil {
		s.log.Warn().Err(err).Str(logging.FieldOp, string(errmsg.OpStreamPlay)).Msg("play rejected")
		s.loading = false
		s.pending = false
		s.playing = false
		s.errMsg = errmsg.MsgPlayFailed
		s.broadcastLocked()
		return err
	}

	s.armGuardLocked()
	return nil
}

func (s *Synchronizer) armGuardLocked() {
	s.disarmGuardLocked()
	gen := s.guardGen
	s.guard = time.AfterFunc(s.cfg.LoadTimeout, func() { s.guardExpired(gen) })
}

func (s *Synchronizer) disarmGuardLocked() {
	s.guardGen++
	if s.guard != nil {
		s.guard.Stop()
		s.guard = nil
	}
}

func (s *Synchronizer) guardExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.guardGen || s.closed {
		return
	}
	s.guard = nil

	// A stream that got as far as CanPlay but never started still counts
	// as too slow.
	if s.playing {
		return
	}

	s.log.Warn().Dur(logging.FieldDelay, s.cfg.LoadTimeout).Msg("stream too slow, giving up")
	s.loading = false
	s.pending = false
	s.errMsg = errmsg.MsgSlowStream
	if s.output != nil {
		s.output.Pause()
	}
	s.broadcastLocked()
}

// SetVolume sets the level, clamped to [0, 1]. Zero means muted.
func (s *Synchronizer) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setVolumeLocked(clamp01(level))
}

// ToggleMute silences the output, or restores the last audible level.
func (s *Synchronizer) ToggleMute() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.volume == 0 {
		s.setVolumeLocked(s.lastAudible)
	} else {
		s.setVolumeLocked(0)
	}
}

// AdjustVolume changes the level by delta, clamped to [0, 1].
func (s *Synchronizer) AdjustVolume(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setVolumeLocked(clamp01(s.volume + delta))
}

func (s *Synchronizer) setVolumeLocked(level float64) {
	s.volume = level
	if level > 0 {
		s.lastAudible = level
	}
	if s.output != nil {
		s.output.SetVolume(level)
	}
	if s.volumes != nil {
		s.volumes.SaveVolume(VolumeLevel{Volume: level, Muted: level == 0, LastAudible: s.lastAudible})
	}
	s.broadcastLocked()
}

// Refresh polls the status endpoint now instead of waiting for the next
// interval.
func (s *Synchronizer) Refresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// Snapshot returns the current state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() Snapshot {
	return Snapshot{
		State:       s.stateLocked(),
		IsPlaying:   s.playing,
		IsLoading:   s.loading,
		Volume:      s.volume,
		Muted:       s.volume == 0,
		Error:       s.errMsg,
		StatusError: s.statusErr,
		Elapsed:     s.elapsed,
		Status:      s.status,
		LastPoll:    s.lastPoll,
	}
}

func (s *Synchronizer) stateLocked() State {
	switch {
	case s.playing:
		return StatePlaying
	case s.loading || s.pending:
		return StateLoading
	case s.errMsg != "":
		return StateErrored
	case s.attempted:
		return StatePaused
	default:
		return StateIdle
	}
}

func (s *Synchronizer) broadcastLocked() {
	snap := s.snapshotLocked()
	for sub := range s.subs {
		sub.send(snap)
	}
}

// Close stops polling, closes the output and signals every subscription.
// Safe to call more than once.
func (s *Synchronizer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.disarmGuardLocked()
	s.cancel()
	close(s.done)
	for sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	out := s.output
	s.mu.Unlock()

	var err error
	if out != nil {
		err = out.Close()
	}
	s.wg.Wait()
	return err
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
