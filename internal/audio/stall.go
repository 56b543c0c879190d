package audio

import (
	"io"
	"sync"
	"time"
)

// stallReader reports reads that block longer than threshold. onStall
// fires once when a read passes the threshold; onResume fires when that
// read finally returns.
type stallReader struct {
	r         io.Reader
	threshold time.Duration
	onStall   func()
	onResume  func()
}

func (s *stallReader) Read(p []byte) (int, error) {
	if s.threshold <= 0 {
		return s.r.Read(p)
	}

	var (
		mu      sync.Mutex
		stalled bool
	)
	timer := time.AfterFunc(s.threshold, func() {
		mu.Lock()
		stalled = true
		mu.Unlock()
		s.onStall()
	})

	n, err := s.r.Read(p)

	timer.Stop()
	mu.Lock()
	resumed := stalled
	mu.Unlock()
	if resumed && err == nil {
		s.onResume()
	}
	return n, err
}
