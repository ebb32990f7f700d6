// Package logging configures the zerolog logger shared by coach components.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string    // trace, debug, info, warn, error, disabled
	Pretty bool      // human-readable console format
	Writer io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name to a zerolog level.
// Unknown and empty values default to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}
