package sharedresources

// Project is the hierarchical scope resources and builds live in,
// repurposing the teacher's flat Pipeline concept (name + team +
// grouping) into the tree the registry needs for name-inheritance
// resolution (spec.md §3, §4.1): a descendant project's resource
// definition overrides an ancestor's same-named one.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// IsRoot reports whether p has no parent project.
func (p Project) IsRoot() bool {
	return p.ParentID == ""
}

// ProjectTree resolves ancestry paths for the registry's inheritance
// walk. Out of scope per spec.md §1 ("project/build-configuration
// storage"): this module only consumes it, and is free to be backed by
// any project store the host maintains.
//
//go:generate counterfeiter . ProjectTree
type ProjectTree interface {
	// Path returns the chain of project ids from the root down to and
	// including projectID. registry.Resolve walks it in this order so
	// that the leaf (last element) wins ties.
	Path(projectID string) ([]string, error)
}
