// Package inspect implements C7, the Configuration Inspector: detecting
// locks that reference undefined or duplicated resources, so the
// arbiter can short-circuit a misconfigured build with a configuration
// error instead of silently denying or granting it.
package inspect

import (
	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
)

// Registry is the slice of registry.Registry the inspector needs.
// Declared locally (rather than imported) to keep inspect free of a
// dependency on registry's SQL/store machinery.
//
//go:generate counterfeiter . Registry
type Registry interface {
	OwnResources(projectID string) ([]sharedresources.Resource, error)
	Resolve(projectID string) (map[string]sharedresources.Resource, error)
}

// BuildType is the narrow view of a build configuration the inspector
// needs: where it's scoped, and which locks it declares.
type BuildType struct {
	ProjectID string
	Locks     []sharedresources.Lock
}

// Inspector is C7's public surface.
type Inspector struct {
	logger   lager.Logger
	registry Registry
}

// New constructs an Inspector backed by registry.
func New(logger lager.Logger, registry Registry) *Inspector {
	return &Inspector{logger: logger, registry: registry}
}

// Inspect returns a mapping lock name -> ConfigurationError for every
// lock in bt.Locks that resolves to no resource (UndefinedResource), or
// whose name collides with another resource defined at the same project
// level (DuplicateName). A lock with no problem is simply absent from
// the result; an empty, non-nil-checked result means the build is
// well-configured.
func (i *Inspector) Inspect(bt BuildType) (map[string]sharedresources.ConfigurationError, error) {
	logger := i.logger.Session("inspect", lager.Data{"project": bt.ProjectID})

	resolved, err := i.registry.Resolve(bt.ProjectID)
	if err != nil {
		logger.Error("failed-to-resolve-registry", err)
		return nil, err
	}

	owned, err := i.registry.OwnResources(bt.ProjectID)
	if err != nil {
		logger.Error("failed-to-load-own-resources", err)
		return nil, err
	}

	duplicates := duplicateNames(owned)

	errs := map[string]sharedresources.ConfigurationError{}
	for _, l := range bt.Locks {
		if duplicates[l.Name] {
			errs[l.Name] = sharedresources.DuplicateNameError(l.Name)
			continue
		}

		if _, ok := resolved[l.Name]; !ok {
			errs[l.Name] = sharedresources.UndefinedResourceError(l.Name)
		}
	}

	return errs, nil
}

func duplicateNames(owned []sharedresources.Resource) map[string]bool {
	counts := map[string]int{}
	for _, res := range owned {
		counts[res.Name]++
	}

	dup := map[string]bool{}
	for name, count := range counts {
		if count > 1 {
			dup[name] = true
		}
	}
	return dup
}
