package api

import (
	"log/slog"
	"net/http"
)

// TokenSource supplies the bearer credential for outgoing requests. The
// session manager satisfies it; requests go out unauthenticated when the
// source reports no token.
type TokenSource interface {
	Token() (string, bool)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client. Useful for custom
// transports and tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource attaches a bearer credential source.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger sets the logger for request-level diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
