package audio

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1.0, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}

	for _, tt := range tests {
		got := levelToVolume(tt.level)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestClampLevel(t *testing.T) {
	assert.InDelta(t, 0.0, clampLevel(-0.5), 1e-9)
	assert.InDelta(t, 1.0, clampLevel(2), 1e-9)
	assert.InDelta(t, 0.3, clampLevel(0.3), 1e-9)
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventLoadStart, "loadstart"},
		{EventCanPlay, "canplay"},
		{EventWaiting, "waiting"},
		{EventPlaying, "playing"},
		{EventPause, "pause"},
		{EventError, "error"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSampleBuffer_UnderrunIsSilence(t *testing.T) {
	b := newSampleBuffer(4)
	samples := make([][2]float64, 8)
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}

	n, ok := b.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 8, n)
	for _, s := range samples {
		assert.Equal(t, [2]float64{0, 0}, s)
	}
}

func TestSampleBuffer_SpansChunks(t *testing.T) {
	b := newSampleBuffer(4)
	b.chunks <- [][2]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}}
	b.chunks <- [][2]float64{{0.4, 0.4}, {0.5, 0.5}}
	b.finish()

	samples := make([][2]float64, 4)
	n, ok := b.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 4, n)
	assert.InDelta(t, 0.4, samples[3][0], 1e-9)

	n, ok = b.Stream(samples)
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 0.5, samples[0][0], 1e-9)

	n, ok = b.Stream(samples)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestSampleBuffer_FinishTwice(t *testing.T) {
	b := newSampleBuffer(1)
	b.finish()
	assert.NotPanics(t, b.finish)
}

// blockingReader returns data after a delay.
type blockingReader struct {
	delay time.Duration
	data  string
	err   error
}

func (r *blockingReader) Read(p []byte) (int, error) {
	time.Sleep(r.delay)
	if r.err != nil {
		return 0, r.err
	}
	return copy(p, r.data), nil
}

func TestStallReader_ReportsStallAndResume(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var stalls, resumes atomic.Int32
		r := &stallReader{
			r:         &blockingReader{delay: 3 * time.Second, data: "abc"},
			threshold: 2 * time.Second,
			onStall:   func() { stalls.Add(1) },
			onResume:  func() { resumes.Add(1) },
		}

		buf := make([]byte, 8)
		n, err := r.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		synctest.Wait()

		assert.Equal(t, int32(1), stalls.Load())
		assert.Equal(t, int32(1), resumes.Load())
	})
}

func TestStallReader_FastReadIsSilent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int32
		r := &stallReader{
			r:         &blockingReader{delay: time.Second, data: "abc"},
			threshold: 2 * time.Second,
			onStall:   func() { calls.Add(1) },
			onResume:  func() { calls.Add(1) },
		}

		_, err := r.Read(make([]byte, 8))
		require.NoError(t, err)
		time.Sleep(5 * time.Second)
		synctest.Wait()

		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestStallReader_NoResumeOnError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var stalls, resumes atomic.Int32
		r := &stallReader{
			r:         &blockingReader{delay: 3 * time.Second, err: io.ErrUnexpectedEOF},
			threshold: time.Second,
			onStall:   func() { stalls.Add(1) },
			onResume:  func() { resumes.Add(1) },
		}

		_, err := r.Read(make([]byte, 8))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		synctest.Wait()

		assert.Equal(t, int32(1), stalls.Load())
		assert.Equal(t, int32(0), resumes.Load())
	})
}

func TestStallReader_ZeroThresholdPassesThrough(t *testing.T) {
	r := &stallReader{r: strings.NewReader("hello")}
	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestDecodeMP3_RejectsGarbage(t *testing.T) {
	_, err := decodeMP3(strings.NewReader("definitely not an mp3 stream"))
	assert.Error(t, err)
}

func TestMock_PlayPauseEvents(t *testing.T) {
	m := NewMock()

	require.NoError(t, m.Play(context.Background()))
	assert.Equal(t, Event{Type: EventLoadStart}, <-m.Events())

	m.Emit(Event{Type: EventPlaying})
	assert.Equal(t, Event{Type: EventPlaying}, <-m.Events())

	m.Pause()
	assert.Equal(t, Event{Type: EventPause}, <-m.Events())

	// Pausing again emits nothing
	m.Pause()
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event %v", ev.Type)
	default:
	}

	assert.Equal(t, 1, m.PlayCalls())
	assert.Equal(t, 2, m.PauseCalls())
}

func TestMock_PlayError(t *testing.T) {
	m := NewMock()
	wantErr := errors.New("NotAllowedError")
	m.SetPlayError(wantErr)

	err := m.Play(context.Background())
	assert.ErrorIs(t, err, wantErr)

	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event %v", ev.Type)
	default:
	}
}

func TestMock_CloseIsIdempotent(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
	assert.ErrorIs(t, m.Play(context.Background()), ErrClosed)

	_, ok := <-m.Events()
	assert.False(t, ok)
}
