// Package present shapes internal domain types into the JSON payloads
// the read-only monitoring surface (api package) serves, mirroring the
// teacher's api/present convention of one small presenter per type.
package present

import sharedresources "github.com/concourse/sharedresources"

// Resource is the wire shape for a registry entry.
type Resource struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Quota     int      `json:"quota,omitempty"`
	Values    []string `json:"values,omitempty"`
}

// ForResource converts a sharedresources.Resource into its wire shape.
func ForResource(r sharedresources.Resource) Resource {
	out := Resource{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Name:      r.Name,
		Kind:      r.Kind.String(),
	}

	if r.Kind == sharedresources.KindQuoted {
		out.Quota = r.Quota
	} else {
		out.Values = r.Values
	}

	return out
}
