package registry

import (
	"sort"
	"sync"

	sharedresources "github.com/concourse/sharedresources"
)

// MemoryStore is an in-process Store, used by tests and by cmd's
// --no-db smoke mode. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	resources map[string]sharedresources.Resource // by id
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resources: map[string]sharedresources.Resource{},
	}
}

// Put adds or replaces a resource definition.
func (m *MemoryStore) Put(res sharedresources.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[res.ID] = res
}

// Remove deletes a resource definition by id.
func (m *MemoryStore) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resources, id)
}

// SaveResource gives MemoryStore the same write-path surface as
// SQLStore.SaveResource, so a caller holding either as a plain Store
// doesn't need to type-switch to persist a new definition.
func (m *MemoryStore) SaveResource(res sharedresources.Resource) error {
	m.Put(res)
	return nil
}

func (m *MemoryStore) OwnResources(projectID string) ([]sharedresources.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []sharedresources.Resource
	for _, res := range m.resources {
		if res.ProjectID == projectID {
			out = append(out, res)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// StaticTree is a ProjectTree backed by a fixed parent map, used by
// tests and simple deployments where the project hierarchy is small and
// known ahead of time.
type StaticTree struct {
	Parents map[string]string // projectID -> parentID, root projects omitted
}

func (t StaticTree) Path(projectID string) ([]string, error) {
	var path []string
	seen := map[string]bool{}

	cur := projectID
	for cur != "" {
		if seen[cur] {
			// defensive: a cycle in hand-authored fixtures shouldn't hang
			// the walk.
			break
		}
		seen[cur] = true
		path = append([]string{cur}, path...)
		cur = t.Parents[cur]
	}

	return path, nil
}
