package session

import "errors"

var (
	// ErrNotInitialized indicates an operation ran before Initialize settled.
	ErrNotInitialized = errors.New("session.not_initialized")

	// ErrClosed indicates the manager has been closed.
	ErrClosed = errors.New("session.closed")
)
