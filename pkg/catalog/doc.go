// Package catalog serves product listings to the presentation layer. Reads
// go through a small capacity-bounded LRU cache keyed by category so that
// browsing back and forth does not hammer the backend; staff mutations
// invalidate the affected entries.
//
// The browsable category set itself is client-local: the backend groups
// products by free-form category name and exposes no categories resource,
// so the package ships a built-in set that staff can extend for the life of
// the process.
package catalog
