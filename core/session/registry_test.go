package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/sessionstore"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func waitReady(t *testing.T, s *session.Store) {
	t.Helper()
	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("store did not hydrate")
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("one store per client", func(t *testing.T) {
		t.Parallel()

		r := session.NewRegistry(sessionstore.NewMemory())
		a := r.Get("a")
		assert.Same(t, a, r.Get("a"))
		assert.NotSame(t, a, r.Get("b"))
		assert.Equal(t, 2, r.Len())
		assert.Equal(t, "auth-storage:a", a.Key())
	})

	t.Run("hydrates from persisted snapshot", func(t *testing.T) {
		t.Parallel()

		mem := sessionstore.NewMemory()
		u := awa()
		require.NoError(t, mem.Save(context.Background(), session.Key("a"), session.Snapshot{Token: "tok123", User: &u}))

		s := session.NewRegistry(mem).Get("a")
		waitReady(t, s)
		assert.Equal(t, "tok123", s.Read().Token)
	})

	t.Run("memory only registry", func(t *testing.T) {
		t.Parallel()

		s := session.NewRegistry(nil).Get("a")
		assert.Equal(t, session.HydrationReady, s.Hydration())
		assert.True(t, s.MemoryOnly())
	})
}

func TestRegistry_Sweep(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	mem := sessionstore.NewMemory()
	r := session.NewRegistry(mem, session.WithClock(clock.Now))

	idle := r.Get("idle")
	waitReady(t, idle)
	require.NoError(t, idle.Login("tok123", awa()))

	watched := r.Get("watched")
	unsubscribe := watched.Subscribe(func(session.Snapshot) {})
	defer unsubscribe()

	clock.Advance(20 * time.Minute)
	r.Get("recent")

	assert.Equal(t, 1, r.Sweep(10*time.Minute))
	assert.Equal(t, 2, r.Len())

	restored := r.Get("idle")
	assert.NotSame(t, idle, restored)
	waitReady(t, restored)
	assert.Equal(t, "tok123", restored.Read().Token)
}

func TestRegistry_SweepKeepsActiveStores(t *testing.T) {
	t.Parallel()

	t.Run("reads count as activity", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
		r := session.NewRegistry(nil, session.WithClock(clock.Now))
		s := r.Get("a")

		clock.Advance(20 * time.Minute)
		s.Read()

		assert.Equal(t, 0, r.Sweep(10*time.Minute))
		assert.Same(t, s, r.Get("a"))
	})

	t.Run("a store with a save in flight is kept", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
		mem := sessionstore.NewMemory()
		gate := newGatedSaver(mem)
		r := session.NewRegistry(gate, session.WithClock(clock.Now))

		s := r.Get("a")
		waitReady(t, s)

		loggedIn := make(chan error, 1)
		go func() { loggedIn <- s.Login("tok123", awa()) }()
		<-gate.started

		clock.Advance(time.Hour)
		assert.Equal(t, 0, r.Sweep(30*time.Minute))
		assert.True(t, s.Saving())
		assert.NotNil(t, r.Get("other"), "registry stays usable while a save is pending")

		close(gate.release)
		require.NoError(t, <-loggedIn)
		assert.False(t, s.Saving())

		clock.Advance(time.Hour)
		assert.Equal(t, 2, r.Sweep(30*time.Minute))

		restored := r.Get("a")
		assert.NotSame(t, s, restored)
		waitReady(t, restored)
		assert.Equal(t, "tok123", restored.Read().Token)
	})
}

func TestRegistry_Evict(t *testing.T) {
	t.Parallel()

	r := session.NewRegistry(nil)
	s := r.Get("a")

	assert.Same(t, s, r.Evict("a"))
	assert.Nil(t, r.Evict("a"))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Run(t *testing.T) {
	t.Parallel()

	r := session.NewRegistry(nil)
	r.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, time.Nanosecond, time.Millisecond)() }()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
