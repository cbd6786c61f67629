package session_test

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/biblio2ie/biblio/core/session"
)

func awa() session.User {
	return session.User{ID: 1, Name: "Awa", Email: "a@x.com", Role: session.RoleStudent}
}

func admin() session.User {
	return session.User{ID: 7, Name: "Moussa", Email: "m@x.com", Role: session.RoleAdmin}
}

// mockPersister implements session.Persister for testing.
type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(session.Snapshot), args.Bool(1), args.Error(2)
}

func (m *mockPersister) Save(ctx context.Context, key string, snap session.Snapshot) error {
	args := m.Called(ctx, key, snap)
	return args.Error(0)
}

// gatedPersister blocks Load until release is closed.
type gatedPersister struct {
	session.Persister
	started chan struct{}
	release chan struct{}
}

func newGated(inner session.Persister) *gatedPersister {
	return &gatedPersister{
		Persister: inner,
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (g *gatedPersister) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return session.Snapshot{}, false, ctx.Err()
	}
	return g.Persister.Load(ctx, key)
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// slowPersister delays every Save.
type slowPersister struct {
	session.Persister
	delay time.Duration
}

func (p *slowPersister) Save(ctx context.Context, key string, snap session.Snapshot) error {
	time.Sleep(p.delay)
	return p.Persister.Save(ctx, key, snap)
}

// gatedSaver blocks the first Save until release is closed.
type gatedSaver struct {
	session.Persister
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedSaver(inner session.Persister) *gatedSaver {
	return &gatedSaver{
		Persister: inner,
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (g *gatedSaver) Save(ctx context.Context, key string, snap session.Snapshot) error {
	g.once.Do(func() {
		close(g.started)
		<-g.release
	})
	return g.Persister.Save(ctx, key, snap)
}
