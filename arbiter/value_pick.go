package arbiter

import sharedresources "github.com/concourse/sharedresources"

// pickValue implements spec.md §4.6 step 6's ANY-value pick for a Custom
// READ with no specific value requested: any pool value disjoint from
// both the taken-lock view and the affinity set's other-assigned values.
// Iteration is in pool order, which is deterministic in this
// implementation; spec.md's Open Questions note the source made no
// promise either way, so this is a conscious, not an accidental, choice.
func pickValue(res sharedresources.Resource, view sharedresources.TakenLock, otherAssigned map[string]bool) (string, bool) {
	taken := takenValueSet(view, otherAssigned)

	for _, v := range res.Values {
		if !taken[v] {
			return v, true
		}
	}

	return "", false
}
