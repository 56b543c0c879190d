package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/logging"
)

// ErrStreamEnded is reported when the server closes a live stream.
var ErrStreamEnded = errors.New("stream ended")

const (
	speakerSampleRate = beep.SampleRate(44100)
	userAgent         = "liveradio/1.0 (https://github.com/llehouerou/liveradio)"

	// bufferChunks holds about three seconds of audio at 44.1 kHz.
	bufferChunks = 32
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Speaker backend, replaced in tests.
var (
	initSpeaker  = initSystemSpeaker
	speakerPlay  = speaker.Play
	speakerClear = speaker.Clear
)

func initSystemSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Stream plays a live MP3 stream over HTTP through the system speaker.
type Stream struct {
	url            string
	client         *http.Client
	stallThreshold time.Duration
	log            zerolog.Logger

	mu      sync.Mutex
	level   float64
	session *session
	closed  bool
	events  chan Event
}

// session is one connection to the stream, from Play until Pause or failure.
type session struct {
	cancel context.CancelFunc
	body   io.Closer
	buffer *sampleBuffer
	volume *effects.Volume
	err    error
}

// NewStream creates an output for the given stream URL. Nothing is
// connected until Play.
func NewStream(url string, stallThreshold time.Duration) *Stream {
	return &Stream{
		url: url,
		// No overall timeout: the body of a live stream never ends.
		client:         &http.Client{},
		stallThreshold: stallThreshold,
		log:            logging.Component("audio"),
		level:          1,
		events:         make(chan Event, eventBuffer),
	}
}

// Events returns the output's lifecycle events.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Play connects to the stream in the background. It is a no-op while a
// connection is already active.
func (s *Stream) Play(ctx context.Context) error {
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.session != nil {
		return nil
	}

	// The connection outlives the caller's request.
	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess := &session{cancel: cancel, buffer: newSampleBuffer(bufferChunks)}
	s.session = sess
	s.emitLocked(Event{Type: EventLoadStart})

	go s.connect(sessCtx, sess)
	return nil
}

func (s *Stream) connect(ctx context.Context, sess *session) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		s.fail(sess, fmt.Errorf("create request: %w", err))
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.fail(sess, fmt.Errorf("http request: %w", err))
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		s.fail(sess, fmt.Errorf("unexpected status: %s", resp.Status))
		return
	}

	body := &stallReader{
		r:         resp.Body,
		threshold: s.stallThreshold,
		onStall:   func() { s.emitFor(sess, Event{Type: EventWaiting}) },
		onResume:  func() { s.resumed(sess) },
	}

	s.mu.Lock()
	if s.session != sess {
		s.mu.Unlock()
		resp.Body.Close()
		return
	}
	sess.body = resp.Body
	s.mu.Unlock()

	decoder, err := decodeMP3(body)
	if err != nil {
		s.fail(sess, fmt.Errorf("decode stream: %w", err))
		return
	}
	s.emitFor(sess, Event{Type: EventCanPlay})

	// Prime the buffer before handing it to the speaker.
	if !s.decodeChunk(ctx, sess, decoder) {
		return
	}

	if !s.startSpeaker(sess, decoder.format) {
		return
	}
	s.log.Debug().Str(logging.FieldURL, s.url).Int("sample_rate", int(decoder.format.SampleRate)).Msg("stream playing")

	for s.decodeChunk(ctx, sess, decoder) {
	}
}

// decodeChunk decodes one chunk into the session buffer. It returns false
// once the session is over.
func (s *Stream) decodeChunk(ctx context.Context, sess *session, d *mp3Decoder) bool {
	chunk := make([][2]float64, chunkSize)
	n, err := d.ReadSamples(chunk)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrStreamEnded
		}
		s.fail(sess, err)
		return false
	}

	select {
	case sess.buffer.chunks <- chunk[:n]:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Stream) startSpeaker(sess *session, format beep.Format) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != sess {
		return false
	}

	var streamer beep.Streamer = sess.buffer
	// Resample if the stream's sample rate differs from the speaker's
	if format.SampleRate != speakerSampleRate {
		streamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	sess.volume = &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}

	speakerPlay(beep.Seq(sess.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked.
		go s.drained(sess)
	})))
	s.emitLocked(Event{Type: EventPlaying})
	return true
}

// fail ends the session with an error. The error is reported once the
// buffered audio has been played out, or immediately if nothing is audible.
func (s *Stream) fail(sess *session, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != sess {
		return
	}
	sess.err = err
	sess.buffer.finish()
	if sess.volume == nil {
		s.endLocked(sess)
	}
}

// drained is called when the speaker ran out of buffered audio.
func (s *Stream) drained(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != sess {
		return
	}
	if sess.err == nil {
		sess.err = ErrStreamEnded
	}
	s.endLocked(sess)
}

func (s *Stream) endLocked(sess *session) {
	s.session = nil
	sess.cancel()
	if sess.body != nil {
		sess.body.Close()
	}
	s.log.Warn().Err(sess.err).Str(logging.FieldURL, s.url).Msg("stream failed")
	s.emitLocked(Event{Type: EventError, Err: sess.err})
}

// Pause stops playback and drops the connection. Live audio cannot be
// resumed from where it stopped, so the next Play reconnects.
func (s *Stream) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauseLocked()
}

func (s *Stream) pauseLocked() {
	sess := s.session
	if sess == nil {
		return
	}
	s.session = nil
	sess.cancel()
	if sess.body != nil {
		sess.body.Close()
	}
	if sess.volume != nil {
		speakerClear()
	}
	s.emitLocked(Event{Type: EventPause})
}

// SetVolume sets the output level (0.0 to 1.0). The level survives
// reconnects.
func (s *Stream) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = clampLevel(level)

	if s.session != nil && s.session.volume != nil {
		speaker.Lock()
		s.session.volume.Volume = levelToVolume(s.level)
		s.session.volume.Silent = s.level <= 0
		speaker.Unlock()
	}
}

// Close stops playback and closes the event channel.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.pauseLocked()
	s.closed = true
	close(s.events)
	return nil
}

// emitFor emits ev only while sess is the active session.
func (s *Stream) emitFor(sess *session, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess {
		s.emitLocked(ev)
	}
}

// resumed reports recovery from a stall once audio is on the speaker.
func (s *Stream) resumed(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess && sess.volume != nil {
		s.emitLocked(Event{Type: EventPlaying})
	}
}

func (s *Stream) emitLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.log.Warn().Stringer(logging.FieldEvent, ev.Type).Msg("event dropped")
	}
}
