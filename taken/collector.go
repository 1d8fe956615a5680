// Package taken implements C3, the Taken-Lock Collector: aggregating
// locks currently held by running and peer-queued builds into a
// per-resource tally, scoped to one project.
package taken

import (
	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/locks"
)

// LockLoader is the narrow slice of store.Store the collector needs: the
// authoritative persisted record for a running build, when one exists.
// Kept as its own interface (rather than importing store directly) so
// taken has no dependency on store's SQL/migration machinery.
//
//go:generate counterfeiter . LockLoader
type LockLoader interface {
	LocksStored(promotionID string) bool
	Load(promotionID string) (map[string]sharedresources.Lock, error)
}

// Collect builds the mapping spec.md §4.3 describes: resource name ->
// TakenLock, restricted to running and peer-queued builds whose project
// id equals projectID.
//
// For each running build, the persisted record (via loader) is
// authoritative, because it records the value actually chosen at grant
// time; extraction is only a fallback when no record exists yet (or
// StorageError recovery per spec.md §7). Queued builds have no record
// yet, so they're always extracted.
func Collect(
	logger lager.Logger,
	loader LockLoader,
	running []sharedresources.RunningBuild,
	queued []sharedresources.QueuedBuild,
	projectID string,
) map[string]sharedresources.TakenLock {
	tally := map[string]sharedresources.TakenLock{}

	for _, rb := range running {
		pid, ok := rb.Promotion.ProjectID()
		if !ok || pid != projectID {
			continue
		}

		attribute(tally, rb.Promotion.ID(), locksForRunning(logger, loader, rb.Promotion))
	}

	for _, qb := range queued {
		pid, ok := qb.Promotion.ProjectID()
		if !ok || pid != projectID {
			continue
		}

		attribute(tally, qb.Promotion.ID(), locks.Extract(qb.Promotion.Features()))
	}

	return tally
}

func locksForRunning(logger lager.Logger, loader LockLoader, promotion sharedresources.BuildPromotion) []sharedresources.Lock {
	if loader != nil && loader.LocksStored(promotion.ID()) {
		stored, err := loader.Load(promotion.ID())
		if err != nil {
			logger.Error("failed-to-load-persisted-locks-falling-back-to-extraction", err, lager.Data{"build": promotion.ID()})
			return locks.Extract(promotion.Features())
		}

		out := make([]sharedresources.Lock, 0, len(stored))
		for _, l := range stored {
			out = append(out, l)
		}
		return out
	}

	return locks.Extract(promotion.Features())
}

func attribute(tally map[string]sharedresources.TakenLock, promotionID string, ls []sharedresources.Lock) {
	for _, l := range ls {
		t := tally[l.Name]
		t.Name = l.Name

		holder := sharedresources.Holder{PromotionID: promotionID, Value: l.Value}
		switch l.Mode {
		case sharedresources.ReadLock:
			t.ReadLocks = append(t.ReadLocks, holder)
		case sharedresources.WriteLock:
			t.WriteLocks = append(t.WriteLocks, holder)
		}

		tally[l.Name] = t
	}
}
