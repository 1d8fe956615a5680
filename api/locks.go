package api

import (
	"encoding/json"
	"net/http"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/api/present"
)

// ListLocks serves every currently persisted lock record, GET /locks,
// grouped by resource name. Unlike C3's Collect (which additionally
// folds in peer-queued builds' extracted-but-not-yet-persisted locks),
// this only reflects what C4 has actually recorded for running builds
// — a deliberately narrower, read-only view suited to monitoring.
func (s *Server) ListLocks() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.Session("list-locks")

		all, err := s.store.All()
		if err != nil {
			logger.Error("failed-to-load-all-locks", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		byName := map[string]sharedresources.TakenLock{}
		for promotionID, locks := range all {
			for _, l := range locks {
				t := byName[l.Name]
				t.Name = l.Name

				holder := sharedresources.Holder{PromotionID: promotionID, Value: l.Value}
				switch l.Mode {
				case sharedresources.ReadLock:
					t.ReadLocks = append(t.ReadLocks, holder)
				case sharedresources.WriteLock:
					t.WriteLocks = append(t.WriteLocks, holder)
				}

				byName[l.Name] = t
			}
		}

		out := make([]present.TakenLock, 0, len(byName))
		for _, t := range byName {
			out = append(out, present.ForTakenLock(t))
		}

		json.NewEncoder(w).Encode(out)
	})
}
