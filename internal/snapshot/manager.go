package snapshot

import (
	"log/slog"
	"time"

	"github.com/thoreinstein/snapkeep/internal/logging"
)

// Manager performs snapshot operations against the filesystem.
type Manager struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for snapshot ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for copy-level tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new snapshot Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		now:    time.Now,
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
