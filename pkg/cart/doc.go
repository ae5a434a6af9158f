// Package cart maintains the shopping cart of the storefront client. A
// Manager keeps exactly one active cart view at a time, chosen from
// per-owner partitions in the key-value store: the anonymous visitor's
// guest cart, or one cart per authenticated subject ever seen on the
// device. Which partition is active is entirely derived from the session
// manager's published identity; the cart never writes session state.
//
// Partitions are not merged. Lines added as a guest stay in the guest
// partition across a login/logout cycle and reappear when the visitor is
// anonymous again.
//
// Every mutation persists the active partition before returning. A storage
// fault keeps the in-memory mutation and marks the partition dirty so the
// next successful write flushes it; the shopper is never blocked by a
// storage outage.
package cart
