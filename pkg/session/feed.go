package session

import (
	"context"
	"sync"

	"github.com/nourshop/storefront/pkg/credential"
)

// Change describes one identity transition. From and To are nil for the
// anonymous side of the transition: a login carries From=nil, a logout
// carries To=nil.
type Change struct {
	From *credential.Identity
	To   *credential.Identity
}

type subscriber struct {
	ch     chan Change
	closed bool
	mu     sync.Mutex
}

func newFeedSubscriber(buffer int) *subscriber {
	return &subscriber{ch: make(chan Change, buffer)}
}

// send delivers non-blocking; a full buffer refuses delivery rather than
// stalling the login/logout path, and the caller drops the subscriber.
func (s *subscriber) send(change Change) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- change:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// Subscribe returns a channel of identity transitions. The subscription is
// torn down when ctx is cancelled or the manager is closed; the channel is
// closed in both cases. A subscriber whose buffer is full when a change
// arrives is dropped, its channel closed, so session operations never
// block on a slow consumer.
func (m *Manager) Subscribe(ctx context.Context) <-chan Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub := newFeedSubscriber(m.feedBuffer)
	if m.closed {
		sub.close()
		return sub.ch
	}

	m.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			m.unsubscribe(sub)
		}()
	}

	return sub.ch
}

func (m *Manager) unsubscribe(sub *subscriber) {
	m.mu.Lock()
	delete(m.subscribers, sub)
	m.mu.Unlock()
	sub.close()
}

// emit delivers a change to every subscriber. Callers must hold m.mu.
func (m *Manager) emit(change Change) {
	for sub := range m.subscribers {
		if !sub.send(change) {
			// Slow or closed subscriber; drop it asynchronously so the
			// session operation is never held up.
			go m.unsubscribe(sub)
		}
	}
}

// Close tears down the manager's change feed. Subsequent Subscribe calls
// return already-closed channels; session operations keep working.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for sub := range m.subscribers {
		sub.close()
	}
	clear(m.subscribers)

	return nil
}
