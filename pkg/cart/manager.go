package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nourshop/storefront/pkg/kv"
	"github.com/nourshop/storefront/pkg/session"
)

// Manager owns the cart contents and their persistence partitioning. All
// operations act on the active partition, which is re-derived from the
// session identity before every mutation so a login or logout can never
// leak lines across owners.
type Manager struct {
	store    kv.Store
	sessions *session.Manager
	logger   *slog.Logger

	mu          sync.Mutex
	initialized bool
	activeKey   string
	lines       []Line
	dirty       bool

	// stale marks a view whose partition could not be read from storage.
	// While set, persists are withheld so a recovered store is never
	// overwritten with the post-fault view, and every operation retries
	// the load first.
	stale bool
}

// New creates a cart manager reading identity from sessions and persisting
// partitions in store.
func New(store kv.Store, sessions *session.Manager, opts ...Option) *Manager {
	if store == nil {
		panic("cart: store is required")
	}
	if sessions == nil {
		panic("cart: session manager is required")
	}

	m := &Manager{
		store:    store,
		sessions: sessions,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize loads the partition belonging to the current identity and
// starts following identity transitions. It must be called after the session
// manager's Initialize has settled, otherwise the wrong partition would be
// resolved. The subscription to identity changes lives until ctx is
// cancelled or the session manager is closed.
func (m *Manager) Initialize(ctx context.Context) error {
	changes := m.sessions.Subscribe(ctx)
	go m.follow(ctx, changes)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.initialized = true
	return m.syncPartitionLocked(ctx)
}

// follow keeps the active partition aligned with identity transitions so
// read paths stay fresh between operations. Mutations do not depend on this
// loop; they re-derive the partition themselves.
func (m *Manager) follow(ctx context.Context, changes <-chan session.Change) {
	for range changes {
		m.mu.Lock()
		if err := m.syncPartitionLocked(ctx); err != nil {
			m.logger.WarnContext(ctx, "cart: partition switch failed", "error", err)
		}
		m.mu.Unlock()
	}
}

// activePartitionKey derives the storage key for the current identity.
func (m *Manager) activePartitionKey() string {
	if identity, ok := m.sessions.Current(); ok {
		return kv.UserCartKey(identity.SubjectID)
	}
	return kv.KeyGuestCart
}

// syncPartitionLocked makes the active view match the current identity:
// persist the outgoing partition if it has unflushed changes, then load the
// incoming one. A failed load leaves the view stale and is retried on the
// next call so the stored lines are never clobbered by a persist that
// happens after the store recovers. Callers must hold m.mu.
func (m *Manager) syncPartitionLocked(ctx context.Context) error {
	key := m.activePartitionKey()
	if m.activeKey == key && !m.stale {
		return nil
	}

	if m.activeKey != key {
		if m.dirty && m.activeKey != "" {
			if err := m.persistLocked(ctx); err != nil {
				// The outgoing partition could not be flushed; its unsaved
				// lines are lost once we switch. Nothing better can be done
				// without blocking the identity transition.
				m.logger.WarnContext(ctx, "cart: abandoning unflushed partition",
					"key", m.activeKey, "error", err)
			}
		}

		m.activeKey = key
		m.dirty = false
		m.lines = nil
	}

	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			m.stale = false
			return nil
		}
		m.stale = true
		return err
	}
	m.stale = false
	m.dirty = false

	lines, err := decodeLines(raw)
	if err != nil {
		m.logger.WarnContext(ctx, "cart: discarding unreadable partition", "key", key, "error", err)
		m.lines = nil
		return nil
	}

	m.lines = lines
	return nil
}

// persistLocked flushes the active view to its partition key. Callers must
// hold m.mu.
func (m *Manager) persistLocked(ctx context.Context) error {
	if m.stale {
		// The stored partition was never read; writing now would replace
		// whatever survived the outage with only the post-fault view.
		m.dirty = true
		return ErrPartitionUnavailable
	}

	raw, err := encodeLines(m.lines)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, m.activeKey, raw); err != nil {
		m.dirty = true
		return err
	}

	m.dirty = false
	return nil
}

// mutate runs fn against the partition of the current identity and persists
// the result. The in-memory change survives a persistence fault; the fault
// is returned so the caller can surface a warning.
func (m *Manager) mutate(ctx context.Context, fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	if err := m.syncPartitionLocked(ctx); err != nil {
		m.logger.WarnContext(ctx, "cart: partition unreadable, keeping change in memory", "error", err)
	}

	fn()
	return m.persistLocked(ctx)
}

// Add appends the product as a new line with quantity 1, or increments the
// existing line's quantity when the product is already in the cart.
func (m *Manager) Add(ctx context.Context, product Product) error {
	if product.ID == "" {
		return ErrInvalidProduct
	}

	return m.mutate(ctx, func() {
		for i := range m.lines {
			if m.lines[i].ProductID == product.ID {
				m.lines[i].Quantity++
				return
			}
		}
		m.lines = append(m.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice,
			ImageRef:  product.ImageRef,
			Quantity:  1,
		})
	})
}

// Remove deletes the line with the given product ID. Removing an absent
// product is a no-op.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	return m.mutate(ctx, func() {
		m.removeLine(productID)
	})
}

// UpdateQuantity sets the line's quantity. A quantity below one removes the
// line; an unknown product ID is a no-op.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return m.mutate(ctx, func() {
		if quantity < 1 {
			m.removeLine(productID)
			return
		}
		for i := range m.lines {
			if m.lines[i].ProductID == productID {
				m.lines[i].Quantity = quantity
				return
			}
		}
	})
}

// Clear empties the active partition and persists the empty state. The
// order-placement flow calls this only after the backend accepted the order,
// never on submission.
func (m *Manager) Clear(ctx context.Context) error {
	return m.mutate(ctx, func() {
		m.lines = nil
	})
}

func (m *Manager) removeLine(productID string) {
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return
		}
	}
}

// Sync re-derives the active partition from the current identity. Mutations
// do this implicitly; Sync is for read paths that need a fresh view right
// after a login or logout.
func (m *Manager) Sync(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	return m.syncPartitionLocked(ctx)
}

// Lines returns the active partition's lines in insertion order. The slice
// is a copy; mutating it does not touch the cart.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]Line, len(m.lines))
	copy(lines, m.lines)
	return lines
}

// TotalItems returns the summed quantity across all lines. Recomputed on
// every call, never persisted.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, line := range m.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the summed subtotal across all lines. Recomputed on
// every call, never persisted.
func (m *Manager) TotalPrice() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0.0
	for _, line := range m.lines {
		total += line.Subtotal()
	}
	return total
}
