package sharedresources

import "fmt"

// ResourceKind distinguishes the two resource variants spec'd in §3:
// Quoted (capacity-based) and Custom (a finite named value pool).
type ResourceKind int

const (
	KindQuoted ResourceKind = iota
	KindCustom
)

func (k ResourceKind) String() string {
	switch k {
	case KindQuoted:
		return "quoted"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Infinite is the sentinel quota value for a Quoted resource with no cap.
const Infinite = -1

// Resource is a named, project-scoped lockable thing. Name is unique
// within a project; a descendant project's definition of the same name
// overrides an ancestor's (see registry.Resolve).
type Resource struct {
	ID        string
	ProjectID string
	Name      string
	Kind      ResourceKind

	// Quota is only meaningful for KindQuoted. Infinite means uncapped.
	Quota int

	// Values is only meaningful for KindCustom: the finite value pool.
	Values []string
}

// NewQuotedResource builds a capacity resource. quota must be >= 1 or
// Infinite.
func NewQuotedResource(id, projectID, name string, quota int) Resource {
	return Resource{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Kind:      KindQuoted,
		Quota:     quota,
	}
}

// NewCustomResource builds a value-pool resource. values must be
// non-empty and distinct; neither this constructor nor the registry
// stores check it.
func NewCustomResource(id, projectID, name string, values []string) Resource {
	cp := make([]string, len(values))
	copy(cp, values)
	return Resource{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Kind:      KindCustom,
		Values:    cp,
	}
}

// IsInfinite reports whether a Quoted resource has no capacity cap.
func (r Resource) IsInfinite() bool {
	return r.Kind == KindQuoted && r.Quota == Infinite
}

// PoolSize returns the number of distinct values in a Custom resource's
// pool, or 0 for Quoted resources.
func (r Resource) PoolSize() int {
	return len(r.Values)
}

// HasValue reports whether v is a member of a Custom resource's pool.
func (r Resource) HasValue(v string) bool {
	for _, c := range r.Values {
		if c == v {
			return true
		}
	}
	return false
}

func (r Resource) String() string {
	switch r.Kind {
	case KindQuoted:
		if r.IsInfinite() {
			return fmt.Sprintf("%s (quoted, infinite)", r.Name)
		}
		return fmt.Sprintf("%s (quoted, quota=%d)", r.Name, r.Quota)
	case KindCustom:
		return fmt.Sprintf("%s (custom, %d values)", r.Name, len(r.Values))
	default:
		return r.Name
	}
}
