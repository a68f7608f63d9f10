package repository

import (
	"context"
	"sync"

	"github.com/smartlocker/smartlocker/internal/locker"
)

// MemoryStore is a map-backed Store used by unit tests and store-less dev
// runs. Conditional semantics match MongoStore: every mutation checks key
// existence under the same lock that applies it.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*locker.Locker
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*locker.Locker)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*locker.Locker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryStore) Put(ctx context.Context, l *locker.Locker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[l.LockerID]; ok {
		return ErrPreconditionFailed
	}
	cp := *l
	m.items[l.LockerID] = &cp
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, patch locker.Patch) (*locker.Locker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.items[id]
	if !ok {
		return nil, ErrPreconditionFailed
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.Location != nil {
		l.Location = *patch.Location
	}
	if patch.Size != nil {
		l.Size = *patch.Size
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrPreconditionFailed
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Scan(ctx context.Context) ([]*locker.Locker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*locker.Locker, 0, len(m.items))
	for _, l := range m.items {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}
