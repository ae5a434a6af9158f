package session

import (
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for warnings about discarded credentials
// and storage faults. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the wall-clock source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithFeedBuffer sets the per-subscriber channel buffer for identity change
// notifications. A minimum of 1 is enforced so deliveries never block.
func WithFeedBuffer(size int) Option {
	return func(m *Manager) {
		m.feedBuffer = max(size, 1)
	}
}
