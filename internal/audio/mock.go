package audio

import (
	"context"
	"sync"
)

// Mock is a test double for Output.
type Mock struct {
	mu          sync.Mutex
	active      bool
	level       float64
	playErr     error
	playCalls   int
	pauseCalls  int
	volumeCalls []float64
	closed      bool
	events      chan Event
}

// NewMock creates a new mock output for testing.
func NewMock() *Mock {
	return &Mock{
		level:  1,
		events: make(chan Event, eventBuffer),
	}
}

// Play records the call and emits EventLoadStart unless a play error is set.
func (m *Mock) Play(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playCalls++
	if m.closed {
		return ErrClosed
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.active = true
	m.emitLocked(Event{Type: EventLoadStart})
	return nil
}

// Pause records the call and emits EventPause if playback was active.
func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pauseCalls++
	if m.active {
		m.active = false
		m.emitLocked(Event{Type: EventPause})
	}
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	m.volumeCalls = append(m.volumeCalls, level)
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

// Emit simulates an output event.
func (m *Mock) Emit(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev.Type {
	case EventPlaying, EventLoadStart, EventWaiting, EventCanPlay:
		m.active = true
	case EventPause, EventError:
		m.active = false
	}
	m.emitLocked(ev)
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumeCalls...)
}

func (m *Mock) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) emitLocked(ev Event) {
	if m.closed {
		return
	}
	select {
	case m.events <- ev:
	default:
	}
}
