package credential

import "errors"

var (
	// ErrMalformedCredential indicates the token could not be decoded or its
	// claims are missing required fields.
	ErrMalformedCredential = errors.New("credential.malformed")
)
