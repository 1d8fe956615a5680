// Package arbiter implements C6, the decision core: given a queued
// build and the runtime snapshot (running builds, peer-queued builds,
// in-cycle affinity), decide whether every lock it declares is
// currently grantable, reserving any multi-valued picks it has to make
// along the way. This is the component spec.md §2 budgets at 40% of the
// core — arbiter.go, grant_rules.go, value_pick.go, and chain.go
// together are its four moving parts.
package arbiter

import (
	"fmt"

	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/affinity"
	"github.com/concourse/sharedresources/inspect"
	"github.com/concourse/sharedresources/locks"
	"github.com/concourse/sharedresources/reason"
)

// Registry is the slice of registry.Registry the arbiter needs.
//
//go:generate counterfeiter . Registry
type Registry interface {
	Resolve(projectID string) (map[string]sharedresources.Resource, error)
}

// Inspector is the slice of inspect.Inspector the arbiter needs.
//
//go:generate counterfeiter . Inspector
type Inspector interface {
	Inspect(bt inspect.BuildType) (map[string]sharedresources.ConfigurationError, error)
}

// Collector is C3's surface, as the arbiter consumes it: the
// project-scoped taken-lock tally for one arbitration call.
//
//go:generate counterfeiter . Collector
type Collector interface {
	Collect(
		logger lager.Logger,
		running []sharedresources.RunningBuild,
		queued []sharedresources.QueuedBuild,
		projectID string,
	) map[string]sharedresources.TakenLock
}

// Recorder observes Decide's outcomes for the metrics package, without
// arbiter depending on prometheus directly. New defaults to a silent
// no-op Recorder.
type Recorder interface {
	RecordGrant()
	RecordDenial(reasonKind string)
}

type noopRecorder struct{}

func (noopRecorder) RecordGrant() {}
func (noopRecorder) RecordDenial(string) {}

// HolderLabeler resolves a promotion id to the human-readable label
// (e.g. a build-type name) the wait-reason formatter names. Out of
// scope per spec.md §1 (build-configuration storage is external); the
// arbiter only needs this narrow lookup.
type HolderLabeler func(promotionID string) string

// StampKeyPrefix is the promotion-attribute key prefix spec.md §6 names
// for a reserved value pick: teamcity.sharedResources.reserved.<resourceId>.
const StampKeyPrefix = "teamcity.sharedResources.reserved."

// Input is everything one Decide call needs, per spec.md §4.6 and §6.
type Input struct {
	Build      sharedresources.BuildPromotion
	Running    []sharedresources.RunningBuild
	PeerQueued []sharedresources.QueuedBuild

	// Emulate suppresses side effects (affinity writes, attribute
	// stamps) while still returning the decision, per spec.md §6.
	Emulate bool
}

// Arbiter is C6's public surface.
type Arbiter interface {
	// Decide returns nil for a grant, or a non-nil wait reason string.
	// Per spec.md §7, this never returns an error to the caller: every
	// internal failure is logged and folded into a grant.
	Decide(logger lager.Logger, in Input) *string
}

type arbiter struct {
	registry    Registry
	inspector   Inspector
	collector   Collector
	affinity    *affinity.ResourceAffinity
	labeler     HolderLabeler
	recorder    Recorder

	// resourcesInChains mirrors spec.md §6's
	// teamcity.sharedResources.resourcesInChains.enabled flag, default
	// true.
	resourcesInChains bool
}

// Option configures an Arbiter built by New.
type Option func(*arbiter)

// WithResourcesInChains overrides the default (true) for the
// resources-in-chains feature flag, spec.md §6.
func WithResourcesInChains(enabled bool) Option {
	return func(a *arbiter) { a.resourcesInChains = enabled }
}

// WithRecorder attaches a metrics.Recorder (or any Recorder) to observe
// every Decide call's outcome. Omitted by default, in which case
// outcomes are simply not counted.
func WithRecorder(r Recorder) Option {
	return func(a *arbiter) { a.recorder = r }
}

// New constructs an Arbiter. registry, inspector, and collector supply
// C1/C7/C3; aff is the process-wide C5 affinity set; labeler resolves a
// promotion id to the label C8 prints in a wait reason.
func New(registry Registry, inspector Inspector, collector Collector, aff *affinity.ResourceAffinity, labeler HolderLabeler, opts ...Option) Arbiter {
	a := &arbiter{
		registry:          registry,
		inspector:         inspector,
		collector:         collector,
		affinity:          aff,
		labeler:           labeler,
		recorder:          noopRecorder{},
		resourcesInChains: true,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *arbiter) Decide(logger lager.Logger, in Input) *string {
	logger = logger.Session("arbitrate", lager.Data{"build": in.Build.ID()})

	a.affinity.Actualize(liveIDs(in.Running, in.PeerQueued, in.Build))

	projectID, ok := in.Build.ProjectID()
	if !ok {
		logger.Debug("missing-project-id-granting")
		a.recorder.RecordGrant()
		return nil
	}

	if _, ok := in.Build.BuildTypeID(); !ok {
		logger.Debug("missing-build-type-granting")
		a.recorder.RecordGrant()
		return nil
	}

	ls := locks.Extract(in.Build.Features())
	if len(ls) == 0 {
		a.recorder.RecordGrant()
		return nil
	}

	errs, err := a.inspector.Inspect(inspect.BuildType{ProjectID: projectID, Locks: ls})
	if err != nil {
		// Fatal logic error per spec.md §7: log with full context, still
		// grant, since blocking a build on an internal bug is worse than
		// proceeding.
		logger.Error("inspection-failed-granting", err)
		a.recorder.RecordGrant()
		return nil
	}
	if len(errs) > 0 {
		msg := reason.FormatConfigurationErrors(errs)
		a.recorder.RecordDenial("configuration")
		return &msg
	}

	call := &callState{
		arbiter:    a,
		logger:     logger,
		running:    in.Running,
		peerQueued: in.PeerQueued,
		emulate:    in.Emulate,
		taken:      map[string]map[string]sharedresources.TakenLock{},
		resolved:   map[string]map[string]sharedresources.Resource{},
	}

	a.affinity.Lock()
	defer a.affinity.Unlock()

	reasonStr := call.decideChain(in.Build)
	if reasonStr == nil {
		a.recorder.RecordGrant()
	} else {
		a.recorder.RecordDenial("contention")
	}
	return reasonStr
}

func liveIDs(running []sharedresources.RunningBuild, queued []sharedresources.QueuedBuild, build sharedresources.BuildPromotion) map[string]bool {
	live := map[string]bool{build.ID(): true}
	for _, rb := range running {
		live[rb.Promotion.ID()] = true
	}
	for _, qb := range queued {
		live[qb.Promotion.ID()] = true
	}
	return live
}

// callState memoizes C1/C3 lookups across the one or more promotions a
// single Decide call arbitrates (the build plus any chain members),
// satisfying spec.md §4.6 step 2's "lazily, memoized within the call".
type callState struct {
	arbiter    *arbiter
	logger     lager.Logger
	running    []sharedresources.RunningBuild
	peerQueued []sharedresources.QueuedBuild
	emulate    bool

	taken    map[string]map[string]sharedresources.TakenLock
	resolved map[string]map[string]sharedresources.Resource
}

func (c *callState) takenFor(projectID string) map[string]sharedresources.TakenLock {
	if t, ok := c.taken[projectID]; ok {
		return t
	}
	t := c.arbiter.collector.Collect(c.logger, c.running, c.peerQueued, projectID)
	c.taken[projectID] = t
	return t
}

func (c *callState) resolvedFor(projectID string) (map[string]sharedresources.Resource, error) {
	if r, ok := c.resolved[projectID]; ok {
		return r, nil
	}
	r, err := c.arbiter.registry.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	c.resolved[projectID] = r
	return r, nil
}

func stampKey(resourceID string) string {
	return fmt.Sprintf("%s%s", StampKeyPrefix, resourceID)
}
