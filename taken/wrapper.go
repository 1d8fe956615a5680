package taken

import (
	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
)

// Collector adapts the package-level Collect function into the
// arbiter.Collector interface shape, closing over the LockLoader
// (store.Store) once at construction instead of threading it through
// every call.
type Collector struct {
	loader LockLoader
}

// NewCollector constructs a Collector backed by loader.
func NewCollector(loader LockLoader) *Collector {
	return &Collector{loader: loader}
}

func (c *Collector) Collect(
	logger lager.Logger,
	running []sharedresources.RunningBuild,
	queued []sharedresources.QueuedBuild,
	projectID string,
) map[string]sharedresources.TakenLock {
	return Collect(logger, c.loader, running, queued, projectID)
}
