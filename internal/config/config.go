package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables overriding config files.
// LIVERADIO_STATUS_POLL_INTERVAL maps to status.poll_interval.
const EnvPrefix = "LIVERADIO_"

type Config struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"

	Stream   StreamConfig   `koanf:"stream"`
	Status   StatusConfig   `koanf:"status"`
	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Notifications NotificationsConfig `koanf:"notifications"`
}

// StreamConfig holds the live audio stream settings.
type StreamConfig struct {
	URL string `koanf:"url"` // e.g., "https://radio.example/listen/station/radio.mp3"
}

// StatusConfig holds the "now playing" endpoint settings.
type StatusConfig struct {
	URL             string        `koanf:"url"`               // e.g., "https://radio.example/api/nowplaying/station"
	PollInterval    time.Duration `koanf:"poll_interval"`     // default: 30s
	MaxPollInterval time.Duration `koanf:"max_poll_interval"` // backoff ceiling after failures (default: 5m)
	Timeout         time.Duration `koanf:"timeout"`           // per-request timeout (default: 10s)
}

// PlaybackConfig holds audio playback settings.
type PlaybackConfig struct {
	DefaultVolume  float64       `koanf:"default_volume"`  // 0.0-1.0 (default: 0.7)
	LoadTimeout    time.Duration `koanf:"load_timeout"`    // slow-stream guard (default: 8s)
	StallThreshold time.Duration `koanf:"stall_threshold"` // network stall before buffering is shown (default: 2s)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // empty means $XDG_STATE_HOME/liveradio/liveradio.log
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"` // obtained with cmd/lastfm-auth
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	// Environment overrides files
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize URLs (remove surrounding whitespace)
	cfg.Stream.URL = strings.TrimSpace(cfg.Stream.URL)
	cfg.Status.URL = strings.TrimSpace(cfg.Status.URL)

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

// envKey maps LIVERADIO_SECTION_SOME_KEY to section.some_key.
// Returning an empty key makes koanf skip the variable.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "" {
		return "", nil
	}
	return strings.Replace(key, "_", ".", 1), value
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/liveradio/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "liveradio", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority among files)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasStream returns true if a stream URL is configured.
func (c *Config) HasStream() bool {
	return c.Stream.URL != ""
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// NotificationsEnabled returns whether desktop notifications are on (default: true).
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications.Enabled == nil {
		return true
	}
	return *c.Notifications.Enabled
}

// GetStatusConfig returns the status endpoint configuration with defaults applied.
func (c *Config) GetStatusConfig() StatusConfig {
	cfg := c.Status

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.MaxPollInterval < cfg.PollInterval {
		cfg.MaxPollInterval = max(5*time.Minute, cfg.PollInterval)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return cfg
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.DefaultVolume <= 0 || cfg.DefaultVolume > 1 {
		cfg.DefaultVolume = 0.7
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 8 * time.Second
	}
	if cfg.StallThreshold <= 0 {
		cfg.StallThreshold = 2 * time.Second
	}

	return cfg
}
