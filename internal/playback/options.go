package playback

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/liveradio/internal/nowplaying"
)

// Defaults used when Config fields are zero.
const (
	DefaultVolume          = 0.7
	DefaultLoadTimeout     = 8 * time.Second
	DefaultPollInterval    = 30 * time.Second
	DefaultMaxPollInterval = 5 * time.Minute
)

// Config holds the synchronizer timings and initial volume.
type Config struct {
	DefaultVolume   float64       // initial and restore-after-mute level
	LoadTimeout     time.Duration // slow-stream guard
	PollInterval    time.Duration // status poll period
	MaxPollInterval time.Duration // backoff ceiling after failures
}

func (c Config) withDefaults() Config {
	if c.DefaultVolume <= 0 || c.DefaultVolume > 1 {
		c.DefaultVolume = DefaultVolume
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.MaxPollInterval <= 0 {
		c.MaxPollInterval = DefaultMaxPollInterval
	}
	return c
}

// VolumeLevel is the persisted volume state.
type VolumeLevel struct {
	Volume      float64
	Muted       bool
	LastAudible float64 // level restored when unmuting
}

// VolumeStore persists the volume across runs.
type VolumeStore interface {
	// LoadVolume returns the saved level; ok is false when nothing is saved.
	LoadVolume() (level VolumeLevel, ok bool, err error)
	// SaveVolume records a change. Implementations may debounce.
	SaveVolume(level VolumeLevel)
}

// HistoryRecorder receives each distinct track that airs while the
// listener is playing.
type HistoryRecorder interface {
	RecordHeard(song nowplaying.Song, at time.Time) error
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithVolumeStore restores and persists the volume.
func WithVolumeStore(store VolumeStore) Option {
	return func(s *Synchronizer) { s.volumes = store }
}

// WithHistory records heard tracks.
func WithHistory(rec HistoryRecorder) Option {
	return func(s *Synchronizer) { s.history = rec }
}

// WithLogger sets the logger (default: the global logger).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Synchronizer) { s.log = l }
}
