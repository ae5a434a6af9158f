package kv

import "errors"

var (
	// ErrKeyNotFound indicates the requested key has no value stored.
	ErrKeyNotFound = errors.New("kv.key_not_found")

	// ErrStoreUnavailable indicates the backend could not serve the request.
	ErrStoreUnavailable = errors.New("kv.store_unavailable")

	// ErrEmptyKey indicates an empty key was passed to a store operation.
	ErrEmptyKey = errors.New("kv.empty_key")
)
