// Package audio provides the single audio output used for the live stream.
package audio

import (
	"context"
	"errors"
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("audio output closed")

// EventType identifies an output lifecycle event.
type EventType int

const (
	EventLoadStart EventType = iota // connecting to the stream
	EventCanPlay                    // first audio decoded
	EventWaiting                    // stalled, waiting for data
	EventPlaying                    // audio is audible
	EventPause                      // playback stopped on request
	EventError                      // playback failed
)

func (e EventType) String() string {
	switch e {
	case EventLoadStart:
		return "loadstart"
	case EventCanPlay:
		return "canplay"
	case EventWaiting:
		return "waiting"
	case EventPlaying:
		return "playing"
	case EventPause:
		return "pause"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by an Output when its playback state changes.
type Event struct {
	Type EventType
	Err  error // set for EventError
}

// Output is an audio sink for one live stream. Its events are the source
// of truth for what is audible.
type Output interface {
	// Play starts (or restarts) the stream. A returned error means the
	// attempt was rejected outright; later failures arrive as EventError.
	Play(ctx context.Context) error
	Pause()
	// SetVolume sets the output level in [0, 1]; 0 is silent.
	SetVolume(level float64)
	Events() <-chan Event
	Close() error
}

// eventBuffer is the capacity of an output's event channel.
const eventBuffer = 64

// Verify implementations at compile time.
var (
	_ Output = (*Stream)(nil)
	_ Output = (*Mock)(nil)
)
