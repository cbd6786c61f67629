package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/biblio2ie/biblio/core/logger"
)

// DefaultHydrateTimeout bounds the background restore of a new store.
const DefaultHydrateTimeout = 2 * time.Second

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per client. Stores are created on first access,
// hydrated in the background and evicted after a period of inactivity.
// An evicted client is restored from its persisted snapshot on next access.
type Registry struct {
	persister      Persister
	logger         *slog.Logger
	hydrateTimeout time.Duration
	storeOpts      []Option
	now            func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger passed to every store.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHydrateTimeout bounds each store's restore.
func WithHydrateTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.hydrateTimeout = d
		}
	}
}

// WithStoreOptions appends options applied to every store.
func WithStoreOptions(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// WithClock replaces time.Now. Used by tests of idle eviction.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates a registry whose stores persist through p.
// A nil p keeps every store in memory.
func NewRegistry(p Persister, opts ...RegistryOption) *Registry {
	r := &Registry{
		persister:      p,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		hydrateTimeout: DefaultHydrateTimeout,
		now:            time.Now,
		entries:        make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the store of clientID, creating it on first use. A new store
// starts hydrating on its own goroutine; callers check Hydration or wait on
// Ready before trusting Read.
func (r *Registry) Get(clientID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[clientID]; ok {
		e.lastSeen = r.now()
		return e.store
	}

	opts := append([]Option{WithLogger(r.logger), WithStoreClock(r.now)}, r.storeOpts...)
	p := r.persister
	s := NewStore(Key(clientID), p, opts...)
	r.entries[clientID] = &entry{store: s, lastSeen: r.now()}

	if p != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), r.hydrateTimeout)
			defer cancel()
			s.Hydrate(ctx)
		}()
	}
	return s
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Evict drops the store of clientID and returns it, or nil when the client
// has no live store. The persisted snapshot is left in place.
func (r *Registry) Evict(clientID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[clientID]
	if !ok {
		return nil
	}
	delete(r.entries, clientID)
	return e.store
}

// Sweep evicts stores not used for longer than idle and returns how many
// were removed. Stores with live subscribers or a save in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) || e.store.LastUsed().After(cutoff) {
			continue
		}
		if e.store.Saving() || e.store.Subscribers() > 0 {
			continue
		}
		delete(r.entries, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done. It fits errgroup.Group.Go.
func (r *Registry) Run(ctx context.Context, idle, every time.Duration) func() error {
	return func() error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := r.Sweep(idle); n > 0 {
					r.logger.DebugContext(ctx, "evicted idle session stores",
						logger.Component("session"),
						slog.Int("evicted", n),
						slog.Int("remaining", r.Len()),
					)
				}
			}
		}
	}
}
