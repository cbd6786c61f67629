package sessionstore

import (
	"context"
	"sync"

	"github.com/biblio2ie/biblio/core/session"
)

// Memory keeps encoded snapshots in a map. Snapshots survive store eviction
// but not a process restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory persister.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) (session.Snapshot, bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return session.Snapshot{}, false, nil
	}
	snap, err := decode(raw)
	if err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (m *Memory) Save(_ context.Context, key string, snap session.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Raw returns the stored payload for key. Tests use it to check the format.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	return raw, ok
}

// Put stores a raw payload under key, bypassing encoding.
func (m *Memory) Put(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}
