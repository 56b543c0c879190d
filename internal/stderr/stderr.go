//go:build !windows

// Package stderr captures output written straight to file descriptor 2 by
// the audio stack (ALSA through oto) and sends it to the log, so it cannot
// draw over the terminal UI.
package stderr

import (
	"os"
	"syscall"

	"github.com/rs/zerolog"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
}

// Start redirects fd 2 into log. Call it before the speaker is
// initialized. On error nothing is redirected and the program can go on.
func Start(log zerolog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		forward(r, log)
	}()
	return c, nil
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil {
		return
	}
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores fd 2 and waits for pending lines to be logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
