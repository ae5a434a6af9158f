// Package kv defines the persistent key-value storage the storefront client
// keeps its local state in: the bearer credential and the per-owner cart
// partitions. The Store interface is deliberately tiny (get, set, remove of
// string values) so that any device-local backend can be plugged in.
//
// Three implementations ship with the package: MemoryStore for tests and
// ephemeral runs, FileStore for a single-file JSON document on disk, and
// RedisStore for shared storage behind a Redis server.
//
// Absent keys are reported as ErrKeyNotFound; backend faults are wrapped in
// ErrStoreUnavailable so callers can degrade gracefully with errors.Is.
package kv
