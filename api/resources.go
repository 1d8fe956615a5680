package api

import (
	"encoding/json"
	"net/http"

	"github.com/concourse/sharedresources/api/present"
)

// ListResources serves the effective resource set for a project,
// GET /resources?project=<id>, as the registry would resolve it
// (project-hierarchy inheritance and overrides already applied).
func (s *Server) ListResources() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.Session("list-resources")

		projectID := r.URL.Query().Get("project")
		if projectID == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resolved, err := s.registry.Resolve(projectID)
		if err != nil {
			logger.Error("failed-to-resolve-registry", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		out := make([]present.Resource, 0, len(resolved))
		for _, res := range resolved {
			out = append(out, present.ForResource(res))
		}

		json.NewEncoder(w).Encode(out)
	})
}
