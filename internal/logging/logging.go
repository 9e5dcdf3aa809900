package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is more verbose than slog.LevelDebug. It is used for per-file
// copy events.
const LevelTrace = slog.LevelDebug - 4

// Config describes where a logger writes and what it keeps.
type Config struct {
	// Level is the minimum level kept by every sink.
	Level slog.Level

	// Format selects the terminal encoding. Unknown values fall back to text.
	Format Format

	// Output receives terminal records. Nil means os.Stderr.
	Output io.Writer

	// File, when set, also receives every record as JSON. The --log-file
	// flag writes through here.
	File io.Writer
}

// New builds a logger from cfg. With cfg.File set, records go to both sinks
// through a [MultiHandler].
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var terminal slog.Handler
	if cfg.Format == FormatJSON {
		terminal = slog.NewJSONHandler(out, opts)
	} else {
		terminal = NewHandler(out, opts)
	}
	if cfg.File == nil {
		return slog.New(terminal)
	}
	return slog.New(NewMultiHandler(terminal, slog.NewJSONHandler(cfg.File, opts)))
}

// NewDiscard returns a logger that drops everything. Library types start
// with it until a caller injects one.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps the count of -v flags to a log level.
//
//	0 (or less) -> Warn
//	1           -> Info
//	2           -> Debug
//	3+          -> Trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv turns a SNAPKEEP_DEBUG value into a -v count.
// "1" and "true" mean debug, "2" means trace, anything else is zero.
func VerbosityFromEnv(val string) int {
	switch val {
	case "1", "true":
		return 2
	case "2":
		return 3
	}
	return 0
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// testWriter forwards each record to t.Log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a trace-level logger whose output shows up only for
// failing tests or under -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: LevelTrace, Output: &testWriter{t: t}})
}
