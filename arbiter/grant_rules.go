package arbiter

import sharedresources "github.com/concourse/sharedresources"

// grantable applies spec.md §4.6's per-kind grant rule for one desired
// lock against the (possibly chain-adjusted) taken-lock view and the
// affinity set's other-assigned values for this resource.
func grantable(l sharedresources.Lock, res sharedresources.Resource, view sharedresources.TakenLock, otherAssigned map[string]bool) bool {
	switch res.Kind {
	case sharedresources.KindQuoted:
		return grantableQuoted(l, res, view)
	case sharedresources.KindCustom:
		return grantableCustom(l, res, view, otherAssigned)
	default:
		return false
	}
}

// grantableQuoted: READ needs no writer present and room under quota (or
// infinite capacity). WRITE needs the resource to be completely idle.
func grantableQuoted(l sharedresources.Lock, res sharedresources.Resource, view sharedresources.TakenLock) bool {
	switch l.Mode {
	case sharedresources.ReadLock:
		return len(view.WriteLocks) == 0 && (res.IsInfinite() || len(view.ReadLocks) < res.Quota)
	case sharedresources.WriteLock:
		return len(view.ReadLocks) == 0 && len(view.WriteLocks) == 0
	default:
		return false
	}
}

// grantableCustom implements both per-mode rules of spec.md §4.6's
// "Custom resource" subsection, including the deliberate exception that
// lets distinct-valued specific WRITEs coexist (see spec.md's Open
// Questions — kept as specified, not "fixed").
func grantableCustom(l sharedresources.Lock, res sharedresources.Resource, view sharedresources.TakenLock, otherAssigned map[string]bool) bool {
	switch l.Mode {
	case sharedresources.ReadLock:
		if view.HasAllWrite() {
			return false
		}

		taken := takenValueSet(view, otherAssigned)
		if l.Value != "" {
			return !taken[l.Value]
		}
		return len(res.Values) > countInPool(taken, res.Values)

	case sharedresources.WriteLock:
		if l.Value == "" {
			return len(view.ReadLocks) == 0 && len(view.WriteLocks) == 0
		}

		held := map[string]bool{}
		for _, v := range view.ReadValues() {
			held[v] = true
		}
		for _, v := range view.WriteValues() {
			held[v] = true
		}
		return !held[l.Value]

	default:
		return false
	}
}

// takenValueSet is the "takenValues" set spec.md's Custom-READ rule
// defines: values(T.readLocks) ∪ values(T.writeLocks) ∪
// affinity.otherAssignedValues(resource, promotion).
func takenValueSet(view sharedresources.TakenLock, otherAssigned map[string]bool) map[string]bool {
	taken := map[string]bool{}
	for _, v := range view.ReadValues() {
		taken[v] = true
	}
	for _, v := range view.WriteValues() {
		taken[v] = true
	}
	for v := range otherAssigned {
		taken[v] = true
	}
	return taken
}

func countInPool(taken map[string]bool, pool []string) int {
	count := 0
	for _, v := range pool {
		if taken[v] {
			count++
		}
	}
	return count
}
