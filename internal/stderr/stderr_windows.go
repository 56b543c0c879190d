//go:build windows

package stderr

import (
	"os"

	"github.com/rs/zerolog"
)

// Capture is a no-op on Windows; its audio backend does not write to fd 2.
type Capture struct{}

// Start returns a no-op capture.
func Start(_ zerolog.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
