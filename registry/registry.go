// Package registry implements C1, the Resource Registry: resolving a
// project's effective resource definitions by walking the project
// hierarchy root-down and letting the nearest (most specific)
// definition win.
package registry

import (
	"fmt"
	"sort"

	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
)

// Store is the storage side-door C1 reads from: "own resources" at
// exactly one project, with no inheritance applied. Backed by the
// Postgres-backed SQLStore in production and an in-memory store in
// tests; either satisfies this narrow interface.
//
//go:generate counterfeiter . Store
type Store interface {
	OwnResources(projectID string) ([]sharedresources.Resource, error)
}

// Registry is C1's public surface.
//
//go:generate counterfeiter . Registry
type Registry interface {
	// OwnResources returns resources defined at exactly this project,
	// with no inheritance applied.
	OwnResources(projectID string) ([]sharedresources.Resource, error)

	// Resolve returns the effective name -> Resource mapping for
	// projectID: root-first, leaf-last, nearest definition wins. The
	// returned map is a snapshot, safe to range over concurrently with
	// further arbitration calls.
	Resolve(projectID string) (map[string]sharedresources.Resource, error)
}

type registry struct {
	logger lager.Logger
	store  Store
	tree   sharedresources.ProjectTree
}

// New constructs a Registry backed by store for resource lookups and
// tree for project-hierarchy paths.
func New(logger lager.Logger, store Store, tree sharedresources.ProjectTree) Registry {
	return &registry{
		logger: logger,
		store:  store,
		tree:   tree,
	}
}

func (r *registry) OwnResources(projectID string) ([]sharedresources.Resource, error) {
	return r.store.OwnResources(projectID)
}

func (r *registry) Resolve(projectID string) (map[string]sharedresources.Resource, error) {
	logger := r.logger.Session("resolve", lager.Data{"project": projectID})

	path, err := r.tree.Path(projectID)
	if err != nil {
		logger.Error("failed-to-resolve-project-path", err)
		return nil, fmt.Errorf("resolving project path for %q: %w", projectID, err)
	}

	resolved := map[string]sharedresources.Resource{}

	// Root-first, leaf-last: a later (more specific) definition simply
	// overwrites an earlier one under the same name.
	for _, pid := range path {
		owned, err := r.store.OwnResources(pid)
		if err != nil {
			logger.Error("failed-to-load-own-resources", err, lager.Data{"in-project": pid})
			return nil, fmt.Errorf("loading resources for project %q: %w", pid, err)
		}

		for _, res := range dedupeByName(owned) {
			resolved[res.Name] = res
		}
	}

	return resolved, nil
}

// dedupeByName is defensive: C7 is the component responsible for
// flagging duplicate names as a configuration error, but Resolve must
// still return a deterministic single definition per name even when
// asked to resolve a misconfigured project, so later decisions don't
// panic on an ambiguous map write. Lexicographically-first resource id
// wins when duplicates are present.
func dedupeByName(resources []sharedresources.Resource) []sharedresources.Resource {
	byName := map[string]sharedresources.Resource{}
	for _, res := range resources {
		existing, ok := byName[res.Name]
		if !ok || res.ID < existing.ID {
			byName[res.Name] = res
		}
	}

	out := make([]sharedresources.Resource, 0, len(byName))
	for _, res := range byName {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
