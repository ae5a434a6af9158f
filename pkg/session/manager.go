package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nourshop/storefront/pkg/credential"
	"github.com/nourshop/storefront/pkg/kv"
)

// Manager maintains the authenticated identity and its lifecycle. It owns the
// access_token key in the store exclusively; everything else reads the
// identity through Current or reacts to transitions through Subscribe.
type Manager struct {
	store      kv.Store
	logger     *slog.Logger
	now        func() time.Time
	feedBuffer int

	mu          sync.RWMutex
	initialized bool
	identity    *credential.Identity
	token       string
	subscribers map[*subscriber]struct{}
	closed      bool
}

// New creates a session manager on top of the given store. The manager is
// unusable until Initialize has been called.
func New(store kv.Store, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}

	m := &Manager{
		store:       store,
		logger:      slog.Default(),
		now:         time.Now,
		feedBuffer:  8,
		subscribers: make(map[*subscriber]struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize restores the persisted credential, if any. A credential that
// fails to decode or has expired is cleared from the store and the manager
// stays anonymous; neither case is an error. A storage read fault also leaves
// the manager anonymous but is returned so the caller can warn about it.
// Initialize must complete before dependent components read the identity.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.initialized = true

	raw, err := m.store.Get(ctx, kv.KeyAccessToken)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		m.logger.WarnContext(ctx, "session: credential restore failed, starting anonymous", "error", err)
		return err
	}

	identity, err := credential.Decode(raw)
	if err != nil {
		m.logger.WarnContext(ctx, "session: discarding malformed stored credential", "error", err)
		m.clearStoredCredential(ctx)
		return nil
	}

	if identity.ExpiredAt(m.now()) {
		m.logger.WarnContext(ctx, "session: stored credential expired, starting anonymous",
			"subject_id", identity.SubjectID)
		m.clearStoredCredential(ctx)
		return nil
	}

	m.identity = &identity
	m.token = raw
	return nil
}

// Login decodes and adopts a freshly issued credential. A credential that
// fails to decode returns credential.ErrMalformedCredential and leaves the
// session untouched. If a user is already authenticated, a logout transition
// runs first; the identity is never swapped silently.
//
// The credential is persisted synchronously. A persistence fault does not
// undo the in-memory login: the new identity is returned together with the
// wrapped fault, and the session simply does not survive a restart until
// storage recovers.
func (m *Manager) Login(ctx context.Context, raw string) (credential.Identity, error) {
	identity, err := credential.Decode(raw)
	if err != nil {
		return credential.Identity{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return credential.Identity{}, ErrNotInitialized
	}

	if m.identity != nil {
		m.logoutLocked(ctx)
	}

	storeErr := m.store.Set(ctx, kv.KeyAccessToken, raw)
	if storeErr != nil {
		m.logger.WarnContext(ctx, "session: credential not persisted, in-memory only",
			"subject_id", identity.SubjectID, "error", storeErr)
	}

	m.identity = &identity
	m.token = raw
	m.emit(Change{To: &identity})

	return identity, storeErr
}

// Logout clears the credential and returns the session to anonymous. Calling
// it while already anonymous is a no-op. As with Login, a storage fault is
// returned but never blocks the in-memory transition.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	if m.identity == nil {
		return nil
	}

	return m.logoutLocked(ctx)
}

// logoutLocked performs the authenticated-to-anonymous transition. Callers
// must hold m.mu and have checked that an identity exists.
func (m *Manager) logoutLocked(ctx context.Context) error {
	from := m.identity

	storeErr := m.store.Remove(ctx, kv.KeyAccessToken)
	if storeErr != nil {
		m.logger.WarnContext(ctx, "session: stored credential not cleared",
			"subject_id", from.SubjectID, "error", storeErr)
	}

	m.identity = nil
	m.token = ""
	m.emit(Change{From: from})

	return storeErr
}

// Current returns the authenticated identity, or false when anonymous.
func (m *Manager) Current() (credential.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.identity == nil {
		return credential.Identity{}, false
	}
	return *m.identity, true
}

// Token returns the raw bearer credential for outgoing API calls, or false
// when anonymous.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.identity == nil {
		return "", false
	}
	return m.token, true
}

// clearStoredCredential removes a credential that failed validation. Failure
// to clear is logged only: the in-memory state is already anonymous, which is
// the state that matters for the rest of the process.
func (m *Manager) clearStoredCredential(ctx context.Context) {
	if err := m.store.Remove(ctx, kv.KeyAccessToken); err != nil {
		m.logger.WarnContext(ctx, "session: failed to clear rejected credential", "error", err)
	}
}
