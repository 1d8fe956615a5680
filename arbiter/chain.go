package arbiter

import (
	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/inspect"
	"github.com/concourse/sharedresources/locks"
	"github.com/concourse/sharedresources/reason"
)

// decideChain implements spec.md §4.6's build-chain composition rule.
// When chains are disabled, or the build has no composite dependents,
// it degrades to the plain single-build procedure. Otherwise:
//
//  1. Already-running composite members become a chain-ancestor
//     exclusion set: their holdings are subtracted from the contention
//     view for every other member of the chain.
//  2. Still-queued composite members are arbitrated first, in walk
//     order; a grant adds that member to the exclusion set too, so later
//     members (including the build itself) see it as non-contending.
//  3. The build itself is arbitrated last, against the accumulated
//     exclusion set.
//
// The first denial encountered along the walk becomes the whole build's
// wait reason.
func (c *callState) decideChain(build sharedresources.BuildPromotion) *string {
	if !c.arbiter.resourcesInChains {
		return c.arbitrateOne(build, nil)
	}

	members := build.Dependents()
	if len(members) == 0 {
		return c.arbitrateOne(build, nil)
	}

	exclude := map[string]bool{}
	for _, m := range members {
		if m.Running {
			exclude[m.Promotion.ID()] = true
		}
	}

	for _, m := range members {
		if m.Running {
			continue
		}

		if reasonStr := c.arbitrateOne(m.Promotion, exclude); reasonStr != nil {
			return reasonStr
		}

		exclude[m.Promotion.ID()] = true
	}

	return c.arbitrateOne(build, exclude)
}

// arbitrateOne runs the single-build grant procedure of spec.md §4.6 for
// one promotion (the build under arbitration, or one of its chain
// members), against a chain-aware contention view with chainExclude's
// holders subtracted.
func (c *callState) arbitrateOne(promotion sharedresources.BuildPromotion, chainExclude map[string]bool) *string {
	logger := c.logger.Session("arbitrate-one", lager.Data{"promotion": promotion.ID()})

	ls := locks.Extract(promotion.Features())
	if len(ls) == 0 {
		return nil
	}

	projectID, ok := promotion.ProjectID()
	if !ok {
		logger.Debug("missing-project-id-granting")
		return nil
	}

	errs, err := c.arbiter.inspector.Inspect(inspect.BuildType{ProjectID: projectID, Locks: ls})
	if err != nil {
		logger.Error("inspection-failed-granting", err)
		return nil
	}
	if len(errs) > 0 {
		msg := reason.FormatConfigurationErrors(errs)
		return &msg
	}

	resolved, err := c.resolvedFor(projectID)
	if err != nil {
		logger.Error("failed-to-resolve-registry-granting", err)
		return nil
	}

	taken := c.takenFor(projectID)

	var unavailable []sharedresources.Lock
	reportTaken := map[string]sharedresources.TakenLock{}

	for _, l := range ls {
		res, ok := resolved[l.Name]
		if !ok {
			// Already caught by Inspect above; defensive only.
			continue
		}

		view := taken[l.Name].WithoutHolders(chainExclude)
		otherAssigned := map[string]bool{}
		if res.Kind == sharedresources.KindCustom {
			otherAssigned = c.arbiter.affinity.OtherAssignedValues(res.ID, promotion.ID())
		}

		if !grantable(l, res, view, otherAssigned) {
			unavailable = append(unavailable, l)
			reportTaken[l.Name] = view
		}
	}

	if len(unavailable) > 0 {
		msg := reason.Format(reportTaken, unavailable, c.arbiter.labeler)
		return &msg
	}

	c.reserve(logger, promotion, ls, resolved, taken, chainExclude)
	return nil
}

// reserve implements spec.md §4.6 step 6: for every Custom READ among
// ls, pick (or confirm) a value and, unless this call is an emulation,
// record it in the affinity set and stamp it onto the promotion.
func (c *callState) reserve(
	logger lager.Logger,
	promotion sharedresources.BuildPromotion,
	ls []sharedresources.Lock,
	resolved map[string]sharedresources.Resource,
	taken map[string]sharedresources.TakenLock,
	chainExclude map[string]bool,
) {
	picks := map[string]string{}

	for _, l := range ls {
		if l.Mode != sharedresources.ReadLock {
			continue
		}

		res, ok := resolved[l.Name]
		if !ok || res.Kind != sharedresources.KindCustom {
			continue
		}

		if l.Value != "" {
			picks[res.ID] = l.Value
			continue
		}

		view := taken[l.Name].WithoutHolders(chainExclude)
		otherAssigned := c.arbiter.affinity.OtherAssignedValues(res.ID, promotion.ID())

		value, ok := pickValue(res, view, otherAssigned)
		if !ok {
			// ValuePickFailure per spec.md §7: a count check that passed
			// but found no free value on pick indicates a race or logic
			// bug. Log a warning, stamp an empty string, still grant.
			logger.Error("value-pick-failure", sharedresources.ValuePickFailure{
				ResourceName: res.Name,
				PromotionID:  promotion.ID(),
			})
			picks[res.ID] = ""
			continue
		}

		picks[res.ID] = value
	}

	if len(picks) == 0 {
		return
	}

	if c.emulate {
		return
	}

	c.arbiter.affinity.Store(promotion.ID(), picks)
	for resourceID, value := range picks {
		promotion.SetAttribute(stampKey(resourceID), value)
	}
}
