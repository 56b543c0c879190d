// Package logging configures the application-wide zerolog logger.
//
// The terminal belongs to the UI, so log output goes to a file under the
// XDG state directory instead of stdout.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// DefaultFile is the log file path relative to $XDG_STATE_HOME.
const DefaultFile = "liveradio/liveradio.log"

// Config holds logger configuration.
type Config struct {
	Level string
	File  string // empty means $XDG_STATE_HOME/liveradio/liveradio.log
}

var (
	mu     sync.RWMutex
	global = zerolog.Nop()
)

// New creates a configured zerolog.Logger writing to w.
func New(w io.Writer, cfg Config) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().
		Logger()
}

// Init opens the log file, installs the global logger and bridges the
// stdlib log package into it. The returned closer flushes the file.
func Init(cfg Config) (io.Closer, error) {
	path, err := resolvePath(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := New(f, cfg)

	mu.Lock()
	global = logger
	mu.Unlock()

	stdlog.SetFlags(0)
	stdlog.SetOutput(logger.With().Str(FieldSource, "stdlog").Logger())

	return f, nil
}

// L returns the global logger. Before Init it discards everything.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return L().With().Str(FieldComponent, name).Logger()
}

func resolvePath(file string) (string, error) {
	if file == "" {
		return xdg.StateFile(DefaultFile)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", err
	}
	return file, nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
