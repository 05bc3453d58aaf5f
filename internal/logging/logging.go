// Package logging configures the structured logger shared by the simulator
// and the CLI. Output goes to stderr so that command output on stdout stays
// clean for piping.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv selects the minimum level: DEBUG, INFO, WARN or ERROR.
const LevelEnv = "ORBSIM_LOG_LEVEL"

// FormatEnv switches to JSON output when set to "json".
const FormatEnv = "ORBSIM_LOG_FORMAT"

// Logger wraps slog.Logger with a few simulation-specific helpers.
type Logger struct {
	*slog.Logger
}

// New returns a logger writing to w at the level taken from the environment.
func New(w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	var h slog.Handler
	if strings.EqualFold(os.Getenv(FormatEnv), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog.New(h)}
}

// Default logs to stderr.
func Default() *Logger { return New(os.Stderr) }

// Discard drops everything. Useful in tests and library callers.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With("component", name)}
}

// Run returns a child logger tagged with a run id.
func (l *Logger) Run(id string) *Logger {
	return &Logger{l.With("run_id", id)}
}

// Failure logs err at error level.
func (l *Logger) Failure(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Error(msg, args...)
}

func levelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnv)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
