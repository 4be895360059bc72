package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the diagnostic logger. Output goes to stderr so it never mixes with
// command output.
func New(level string, color bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, color)
}

// NewWithWriter is New writing to w
func NewWithWriter(w io.Writer, level string, color bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "finsec").
		Logger()
}

// ParseLevel maps a configured level name to zerolog, defaulting to warn
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}
