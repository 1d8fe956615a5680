package sharedresources

// BuildPromotion is the external scheduler-side identity the arbiter
// decides about. Out of scope per spec.md §1: its storage, its
// "running"/"queued" lifecycle, and build-configuration resolution all
// live on the host scheduler's side; the arbiter only needs this
// narrow view.
//
//go:generate counterfeiter . BuildPromotion
type BuildPromotion interface {
	ID() string
	ProjectID() (string, bool)
	BuildTypeID() (string, bool)

	// Features returns the build's declared feature parameters, the
	// input locks.Extract (C2) reads.
	Features() map[string]string

	// SetAttribute stamps a resolved value pick onto the promotion,
	// keyed as spec.md §6 names:
	// teamcity.sharedResources.reserved.<resourceId>.
	SetAttribute(key, value string)

	// Dependents returns this promotion's composite chain children, used
	// by the build-chain composition rule (spec §4.6). Empty when the
	// build is not part of a chain; the arbiter ignores it when chains
	// are disabled.
	Dependents() []CompositeMember
}

// CompositeMember is one node in a build chain: either already running
// (with a persisted lock record reachable via store.Store) or still
// queued alongside the build under arbitration.
type CompositeMember struct {
	Promotion BuildPromotion
	Running   bool
}

// RunningBuild is the host scheduler's view of a build already
// executing; the arbiter reads its promotion to attribute taken locks.
type RunningBuild struct {
	Promotion BuildPromotion
}

// QueuedBuild is a peer build already cleared to start in the current
// scheduling cycle (an agent has been distributed to it), considered a
// holder alongside RunningBuild for the purposes of C3's tally.
type QueuedBuild struct {
	Promotion BuildPromotion
}
