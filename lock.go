package sharedresources

// LockMode is a lock's requested mode: shared (READ) or exclusive
// (WRITE).
type LockMode string

const (
	ReadLock  LockMode = "readLock"
	WriteLock LockMode = "writeLock"
)

// Lock is a build's request against a resource, identified by name (not
// by Resource, since the arbiter resolves names against a project's
// registry view). An empty Value means "ANY" for Custom resources; it
// is always empty for Quoted resources.
type Lock struct {
	Name  string
	Mode  LockMode
	Value string
}

// IsAny reports whether this is a Custom READ/WRITE request with no
// specific value pinned.
func (l Lock) IsAny() bool {
	return l.Value == ""
}

// Holder is a build-promotion identity holding a lock, paired with the
// value it holds (empty for Quoted resources or a Custom "ALL" write).
type Holder struct {
	PromotionID string
	Value       string
}

// TakenLock is the per-resource tally C3 builds: every currently held
// READ and WRITE lock on one named resource, grouped by mode.
type TakenLock struct {
	Name       string
	ReadLocks  []Holder
	WriteLocks []Holder
}

// ReadValues returns the set of non-empty values held by READ holders.
func (t TakenLock) ReadValues() []string {
	return holderValues(t.ReadLocks)
}

// WriteValues returns the set of non-empty values held by WRITE holders.
func (t TakenLock) WriteValues() []string {
	return holderValues(t.WriteLocks)
}

// HasAllWrite reports whether any WRITE holder holds an empty value,
// i.e. an "ALL" lock on a Custom resource that blocks every other
// requestor.
func (t TakenLock) HasAllWrite() bool {
	for _, h := range t.WriteLocks {
		if h.Value == "" {
			return true
		}
	}
	return false
}

func holderValues(holders []Holder) []string {
	var values []string
	for _, h := range holders {
		if h.Value != "" {
			values = append(values, h.Value)
		}
	}
	return values
}

// withoutHolders returns a copy of t with any holder whose PromotionID
// is in exclude removed from both buckets. Used by the chain-aware view
// (arbiter/chain.go) to subtract chain-internal holders from contention.
func (t TakenLock) withoutHolders(exclude map[string]bool) TakenLock {
	if len(exclude) == 0 {
		return t
	}
	out := TakenLock{Name: t.Name}
	for _, h := range t.ReadLocks {
		if !exclude[h.PromotionID] {
			out.ReadLocks = append(out.ReadLocks, h)
		}
	}
	for _, h := range t.WriteLocks {
		if !exclude[h.PromotionID] {
			out.WriteLocks = append(out.WriteLocks, h)
		}
	}
	return out
}

// WithoutHolders is the exported form of withoutHolders, used by the
// arbiter package to build the chain-aware contention view described in
// spec §4.6.
func (t TakenLock) WithoutHolders(exclude map[string]bool) TakenLock {
	return t.withoutHolders(exclude)
}
