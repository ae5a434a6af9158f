package cart

import "log/slog"

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for storage fault warnings. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
