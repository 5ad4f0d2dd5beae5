package evesync

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a new logger instance with a specified level and output.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("lib", "evesync").
		Logger()
}

// NewVerboseLogger maps a -v count onto a level: 0 warn, 1 info, 2 debug,
// anything higher trace.
func NewVerboseLogger(w io.Writer, verbose int) zerolog.Logger {
	var level zerolog.Level
	switch verbose {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}
	return NewLogger(w, level)
}

// LogLevelFromString parses a string to a zerolog.Level.
func LogLevelFromString(levelStr string) (zerolog.Level, error) {
	return zerolog.ParseLevel(strings.ToLower(levelStr))
}

// NewCLILogger uses the -v count when one was given and the configured
// level name otherwise.
func NewCLILogger(w io.Writer, verbose int, level string) (zerolog.Logger, error) {
	if verbose > 0 {
		return NewVerboseLogger(w, verbose), nil
	}
	lvl, err := LogLevelFromString(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return NewLogger(w, lvl), nil
}
