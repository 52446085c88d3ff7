// Package notify holds the process-wide list of transient user-facing
// messages. The store is owned by the application root and passed down
// explicitly; nothing here is a package-level singleton.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTTL           = 5 * time.Second
	defaultSweepInterval = 1 * time.Second
)

// Kind classifies a notification for display.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notification is a single transient message.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Subscriber receives the full notification list after every change.
type Subscriber func([]Notification)

// Option configures the Store.
type Option func(*Store)

// WithTTL sets how long a notification stays visible.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithSweepInterval sets how often expired notifications are collected.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Store) {
		s.sweepInterval = d
	}
}

// Store is an in-memory notification list with auto-expiry. Insertion order
// is preserved.
type Store struct {
	mu            sync.Mutex
	items         []Notification
	subs          map[uint64]Subscriber
	nextSub       uint64
	ttl           time.Duration
	sweepInterval time.Duration
}

// NewStore creates a notification store with default expiry settings and
// optional overrides.
func NewStore(opts ...Option) *Store {
	s := &Store{
		subs:          make(map[uint64]Subscriber),
		ttl:           defaultTTL,
		sweepInterval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the expiry sweep until ctx is cancelled.
func (s *Store) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(time.Now())
			}
		}
	}()
}

// Add appends a notification and returns its identifier.
func (s *Store) Add(message string, kind Kind) string {
	s.mu.Lock()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	s.items = append(s.items, n)
	items := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	publish(subs, items)
	return n.ID
}

// Remove deletes a notification immediately. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, n := range s.items {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.items = kept
	var (
		items []Notification
		subs  []Subscriber
	)
	if removed {
		items = s.snapshotLocked()
		subs = s.subscribersLocked()
	}
	s.mu.Unlock()

	if removed {
		publish(subs, items)
	}
}

// List returns the current notifications in insertion order.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called after every change. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, n := range s.items {
		if now.Sub(n.CreatedAt) < s.ttl {
			kept = append(kept, n)
		}
	}
	changed := len(kept) != len(s.items)
	s.items = kept
	var (
		items []Notification
		subs  []Subscriber
	)
	if changed {
		items = s.snapshotLocked()
		subs = s.subscribersLocked()
	}
	s.mu.Unlock()

	if changed {
		publish(subs, items)
	}
}

func (s *Store) snapshotLocked() []Notification {
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) subscribersLocked() []Subscriber {
	out := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// publish runs outside the store lock so a subscriber can call back into the
// store without deadlocking.
func publish(subs []Subscriber, items []Notification) {
	for _, fn := range subs {
		fn(items)
	}
}
