package api

import (
	"encoding/json"
	"net/http"

	"github.com/concourse/sharedresources/api/present"
)

// ShowAffinity serves the full in-cycle affinity snapshot, GET
// /affinity: promotion id -> (resource id -> reserved value).
func (s *Server) ShowAffinity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(present.ForAffinity(s.affinity.Snapshot()))
	})
}
