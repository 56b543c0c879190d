package audio

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventTimeout = 5 * time.Second

// fakeSpeaker records what the stream hands to the speaker.
type fakeSpeaker struct {
	played chan beep.Streamer
	clears atomic.Int32
}

func stubSpeaker(t *testing.T) *fakeSpeaker {
	t.Helper()
	fs := &fakeSpeaker{played: make(chan beep.Streamer, 4)}

	origInit, origPlay, origClear := initSpeaker, speakerPlay, speakerClear
	initSpeaker = func() error { return nil }
	speakerPlay = func(s ...beep.Streamer) {
		for _, st := range s {
			fs.played <- st
		}
	}
	speakerClear = func() { fs.clears.Add(1) }
	t.Cleanup(func() {
		initSpeaker, speakerPlay, speakerClear = origInit, origPlay, origClear
	})
	return fs
}

// silentMP3 builds MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo)
// with empty side info, which decode to silence.
func silentMP3(frames int) []byte {
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
	return bytes.Repeat(frame, frames)
}

func nextEvent(t *testing.T, s *Stream) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(eventTimeout):
		t.Fatal("no event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, s *Stream, wait time.Duration) {
	t.Helper()
	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event %v", ev.Type)
	case <-time.After(wait):
	}
}

// hangingServer accepts requests and never answers until the client
// goes away.
func hangingServer(t *testing.T) (*httptest.Server, <-chan struct{}, *atomic.Int32) {
	t.Helper()
	entered := make(chan struct{}, 4)
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		entered <- struct{}{}
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv, entered, &requests
}

func TestStream_NonOKStatusFails(t *testing.T) {
	stubSpeaker(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewStream(srv.URL, time.Second)
	defer s.Close()

	require.NoError(t, s.Play(context.Background()))

	assert.Equal(t, EventLoadStart, nextEvent(t, s).Type)
	ev := nextEvent(t, s)
	assert.Equal(t, EventError, ev.Type)
	require.Error(t, ev.Err)
	assert.Contains(t, ev.Err.Error(), "503")
}

func TestStream_PauseBeforeConnect(t *testing.T) {
	fs := stubSpeaker(t)
	srv, entered, _ := hangingServer(t)

	s := NewStream(srv.URL, time.Second)
	defer s.Close()

	require.NoError(t, s.Play(context.Background()))
	assert.Equal(t, EventLoadStart, nextEvent(t, s).Type)
	<-entered

	s.Pause()
	assert.Equal(t, EventPause, nextEvent(t, s).Type)

	// The aborted request must not surface as an error later.
	assertNoEvent(t, s, 200*time.Millisecond)
	assert.Zero(t, fs.clears.Load(), "nothing reached the speaker")
}

func TestStream_PlayWhileActiveIsNoop(t *testing.T) {
	stubSpeaker(t)
	srv, entered, requests := hangingServer(t)

	s := NewStream(srv.URL, time.Second)
	defer s.Close()

	require.NoError(t, s.Play(context.Background()))
	require.NoError(t, s.Play(context.Background()))
	<-entered

	assert.Equal(t, EventLoadStart, nextEvent(t, s).Type)
	assertNoEvent(t, s, 100*time.Millisecond)
	assert.Equal(t, int32(1), requests.Load())

	s.Pause()
	assert.Equal(t, EventPause, nextEvent(t, s).Type)
}

func TestStream_EndOfStreamReportedAfterDrain(t *testing.T) {
	fs := stubSpeaker(t)
	data := silentMP3(10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	s := NewStream(srv.URL, time.Second)
	defer s.Close()

	require.NoError(t, s.Play(context.Background()))
	assert.Equal(t, EventLoadStart, nextEvent(t, s).Type)
	assert.Equal(t, EventCanPlay, nextEvent(t, s).Type)
	assert.Equal(t, EventPlaying, nextEvent(t, s).Type)

	var out beep.Streamer
	select {
	case out = <-fs.played:
	case <-time.After(eventTimeout):
		t.Fatal("nothing handed to the speaker")
	}

	// Nothing is reported while buffered audio is still audible.
	assertNoEvent(t, s, 100*time.Millisecond)

	buf := make([][2]float64, 1024)
	deadline := time.After(eventTimeout)
	for {
		out.Stream(buf)
		select {
		case ev := <-s.Events():
			assert.Equal(t, EventError, ev.Type)
			assert.ErrorIs(t, ev.Err, ErrStreamEnded)
			return
		case <-deadline:
			t.Fatal("end of stream not reported")
		default:
		}
	}
}

func TestStream_PlayAfterClose(t *testing.T) {
	stubSpeaker(t)
	s := NewStream("http://127.0.0.1:1/stream", time.Second)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Play(context.Background()), ErrClosed)
}
