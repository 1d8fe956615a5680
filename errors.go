package sharedresources

import "fmt"

// ConfigurationError is raised by the Configuration Inspector (C7) for a
// lock whose resource is undefined or duplicated. It is always surfaced
// as a wait reason, never a grant, and is never retried internally.
type ConfigurationError struct {
	LockName string
	Reason   string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.LockName, e.Reason)
}

// UndefinedResourceError is one of the two ConfigurationError kinds C7
// reports: a lock name that resolves to no resource in the project's
// effective registry view.
func UndefinedResourceError(lockName string) ConfigurationError {
	return ConfigurationError{
		LockName: lockName,
		Reason:   "no resource with this name is defined",
	}
}

// DuplicateNameError is the other ConfigurationError kind: two resources
// sharing a name at the same project level.
func DuplicateNameError(lockName string) ConfigurationError {
	return ConfigurationError{
		LockName: lockName,
		Reason:   "multiple resources are defined with this name at the same project level",
	}
}

// ValuePickFailure indicates a Custom READ passed the count check in the
// per-kind grant rule but no free value remained once affinity was
// consulted — a race between the count check and the pick, or a logic
// bug. Per spec.md §7 this is a defensive branch: it is logged, the
// build is still granted with an empty reservation, and the executor may
// fail visibly later.
type ValuePickFailure struct {
	ResourceName string
	PromotionID  string
}

func (e ValuePickFailure) Error() string {
	return fmt.Sprintf("no free value found for resource %q when reserving for build %q", e.ResourceName, e.PromotionID)
}

// MissingContextError models spec.md §7's MissingContext case: a
// promotion with no project id or no resolvable build configuration.
// The arbiter treats it as a silent grant (see arbiter.Decide), logged
// at debug; this type exists so callers can distinguish the case in
// tests and logs.
type MissingContextError struct {
	PromotionID string
	Reason      string
}

func (e MissingContextError) Error() string {
	return fmt.Sprintf("missing context for build %q: %s", e.PromotionID, e.Reason)
}
