package store

import (
	"sync"

	sharedresources "github.com/concourse/sharedresources"
)

// MemoryStore is an in-process Store. Used by unit tests across the
// module (registered as the collector's LockLoader, the arbiter's
// dependency) and by cmd's --no-db smoke mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]sharedresources.Lock // promotionID -> name -> Lock
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string]map[string]sharedresources.Lock{},
	}
}

func (m *MemoryStore) Store(promotionID string, ls []sharedresources.Lock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byName := make(map[string]sharedresources.Lock, len(ls))
	for _, l := range ls {
		byName[l.Name] = l
	}
	m.records[promotionID] = byName
	return nil
}

func (m *MemoryStore) LocksStored(promotionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[promotionID]
	return ok
}

func (m *MemoryStore) Load(promotionID string) (map[string]sharedresources.Lock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.records[promotionID]
	if !ok {
		return nil, nil
	}

	cp := make(map[string]sharedresources.Lock, len(stored))
	for k, v := range stored {
		cp[k] = v
	}
	return cp, nil
}

func (m *MemoryStore) Remove(promotionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, promotionID)
	return nil
}

func (m *MemoryStore) All() (map[string]map[string]sharedresources.Lock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]map[string]sharedresources.Lock, len(m.records))
	for promotionID, byName := range m.records {
		cp := make(map[string]sharedresources.Lock, len(byName))
		for k, v := range byName {
			cp[k] = v
		}
		out[promotionID] = cp
	}
	return out, nil
}
