// Package logging sets up the debug log. Logging is off unless --debug is
// passed, in which case JSON lines go to DebugLogPath in the working directory.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "jarvis-debug.log"

// Logger is a zerolog logger plus the file backing it, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New returns a disabled logger, or one writing to DebugLogPath when debug is set.
func New(debug bool) (*Logger, error) {
	if !debug {
		return &Logger{Logger: zerolog.Nop()}, nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}
	l := &Logger{Logger: NewWriter(f, zerolog.DebugLevel), file: f}
	l.Info().Str("log_file", DebugLogPath).Msg("debug start")
	return l, nil
}

// NewWriter builds a timestamped logger writing to w at level.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithContext attaches the logger to ctx for zerolog.Ctx lookups.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// Close flushes the end marker and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.Info().Time("at", time.Now()).Msg("debug end")
	return l.file.Close()
}
