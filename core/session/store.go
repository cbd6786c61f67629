package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/biblio2ie/biblio/core/logger"
)

// Hydration tells whether the persisted snapshot has been restored yet.
type Hydration int32

const (
	// HydrationUnknown means the restore attempt is still running. Consumers
	// must not read "empty" as "logged out" in this state.
	HydrationUnknown Hydration = iota
	// HydrationReady means Read reflects the restored or updated state.
	HydrationReady
)

func (h Hydration) String() string {
	if h == HydrationReady {
		return "ready"
	}
	return "unknown"
}

// DefaultSaveTimeout bounds a single persistence write.
const DefaultSaveTimeout = 2 * time.Second

// Store holds one client's authentication state.
//
// Login and Logout are the only mutations. Each one replaces token and user
// together, persists the result and notifies subscribers. Persistence errors
// never reach callers: the store logs one warning and keeps working from
// memory for the rest of its life.
type Store struct {
	key         string
	persister   Persister
	logger      *slog.Logger
	saveTimeout time.Duration
	now         func() time.Time

	mu        sync.RWMutex
	snap      Snapshot
	version   uint64
	hydration Hydration
	subs      map[uint64]*subscriber
	nextSub   uint64
	lastUsed  atomic.Int64

	ready       chan struct{}
	hydrateOnce sync.Once

	saveMu       sync.Mutex
	savedVersion uint64
	saving       atomic.Int32
	memoryOnly   atomic.Bool
	degradeOnce  sync.Once
}

// subscriber serializes deliveries to one callback and drops any snapshot
// older than the last one it delivered.
type subscriber struct {
	mu        sync.Mutex
	fn        func(Snapshot)
	delivered uint64
	closed    atomic.Bool
}

func (sub *subscriber) deliver(version uint64, snap Snapshot) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if version <= sub.delivered || sub.closed.Load() {
		return
	}
	sub.delivered = version
	sub.fn(snap.clone())
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSaveTimeout bounds each persistence write.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// WithStoreClock replaces time.Now for the last-used timestamp.
func WithStoreClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a store persisted under key. A nil persister makes the
// store memory-only and immediately ready. Otherwise the store stays in
// HydrationUnknown until Hydrate completes.
func NewStore(key string, p Persister, opts ...Option) *Store {
	s := &Store{
		key:         key,
		persister:   p,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		saveTimeout: DefaultSaveTimeout,
		now:         time.Now,
		subs:        make(map[uint64]*subscriber),
		ready:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.touch()
	if p == nil {
		s.memoryOnly.Store(true)
		s.hydrateOnce.Do(func() { s.finishHydration(Snapshot{}, false) })
	}
	return s
}

// Key returns the persistence key.
func (s *Store) Key() string { return s.key }

// Login replaces the state with token and user. Invalid input returns
// ErrInvalidToken or ErrInvalidUser and leaves the store unchanged.
func (s *Store) Login(token string, user User) error {
	next, err := loginTransition(token, user)
	if err != nil {
		return err
	}
	s.apply(func(Snapshot) Snapshot { return next })
	return nil
}

// Logout clears the state. Calling it on an empty store is harmless.
func (s *Store) Logout() {
	s.apply(logoutTransition)
}

func (s *Store) apply(transition func(Snapshot) Snapshot) {
	s.touch()
	s.saving.Add(1)
	defer s.saving.Add(-1)

	s.mu.Lock()
	next := transition(s.snap)
	s.snap = next
	s.version++
	version := s.version
	subs := s.subscribersLocked()
	s.mu.Unlock()

	// Overlapping transitions may reach here out of order. The persister
	// skips versions older than the last saved one and subscribers skip
	// versions older than the last delivered one, so both end on the latest.
	s.persist(version, next)
	notify(subs, version, next)
}

// Read returns the latest completed state. The result is a copy.
func (s *Store) Read() Snapshot {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Hydration returns the hydration state.
func (s *Store) Hydration() Hydration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydration
}

// Ready is closed once hydration completes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// MemoryOnly reports whether the store has stopped persisting.
func (s *Store) MemoryOnly() bool {
	return s.memoryOnly.Load()
}

// Hydrate restores the persisted snapshot. Only the first call does work;
// later calls return at once. A missing entry hydrates as empty. A load
// failure or corrupt payload hydrates as empty and switches the store to
// memory-only. A Login or Logout that completed while loading wins over the
// loaded value.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		snap, found, err := s.persister.Load(ctx, s.key)
		if err != nil {
			s.degrade("load", err)
			s.finishHydration(Snapshot{}, false)
			return
		}
		s.finishHydration(snap, found)
	})
}

func (s *Store) finishHydration(loaded Snapshot, found bool) {
	s.mu.Lock()
	if found && s.version == 0 {
		s.snap = loaded.normalize()
	}
	s.hydration = HydrationReady
	s.version++
	version := s.version
	current := s.snap
	subs := s.subscribersLocked()
	s.mu.Unlock()

	close(s.ready)
	notify(subs, version, current)
}

// Subscribe registers fn to run after every transition and once after
// hydration. fn runs on the mutating goroutine with no store lock held, so
// it may call Read or Hydration. Calls to one fn never overlap and never go
// back in time: a snapshot older than one already delivered is dropped.
// fn must not block and must not call Login or Logout.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.touch()
	sub := &subscriber{fn: fn}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.closed.Store(true)
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// LastUsed returns when the store was last read, mutated or subscribed to.
func (s *Store) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Saving reports whether a transition is still being persisted.
func (s *Store) Saving() bool {
	return s.saving.Load() > 0
}

func (s *Store) touch() {
	s.lastUsed.Store(s.now().UnixNano())
}

func (s *Store) subscribersLocked() []*subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	out := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	return out
}

func notify(subs []*subscriber, version uint64, snap Snapshot) {
	for _, sub := range subs {
		sub.deliver(version, snap)
	}
}

// persist writes snap unless a newer version is already saved.
func (s *Store) persist(version uint64, snap Snapshot) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if version <= s.savedVersion || s.memoryOnly.Load() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, s.key, snap); err != nil {
		s.degrade("save", err)
		return
	}
	s.savedVersion = version
}

func (s *Store) degrade(op string, err error) {
	s.memoryOnly.Store(true)
	s.degradeOnce.Do(func() {
		attrs := []any{
			slog.String("key", s.key),
			slog.String("op", op),
			logger.Error(err),
		}
		if errors.Is(err, ErrCorruptSnapshot) {
			attrs = append(attrs, slog.Bool("corrupt", true))
		}
		s.logger.Warn("session persistence unavailable, continuing in memory", attrs...)
	})
}
