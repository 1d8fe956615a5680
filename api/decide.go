package api

import (
	"encoding/json"
	"net/http"

	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/arbiter"
)

// Arbiter is the slice of arbiter.Arbiter the HTTP decision endpoint
// needs.
type Arbiter interface {
	Decide(logger lager.Logger, in arbiter.Input) *string
}

// promotionRequest is the wire shape of one build promotion in a decide
// request: just enough identity for locks.Extract and the grant rules,
// since an HTTP caller has no Go BuildPromotion value to hand over
// directly.
type promotionRequest struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	BuildTypeID string            `json:"build_type_id"`
	Features    map[string]string `json:"features"`
}

// jsonPromotion adapts a promotionRequest into sharedresources.BuildPromotion.
// SetAttribute is a no-op and Dependents is always empty: an HTTP caller
// has no promotion object to stamp an attribute onto, and build-chain
// composition (spec.md §4.6) is only meaningful to an embedding host
// scheduler calling arbiter.Arbiter directly, not over this endpoint.
type jsonPromotion struct {
	req promotionRequest
}

func (p jsonPromotion) ID() string { return p.req.ID }
func (p jsonPromotion) ProjectID() (string, bool) { return p.req.ProjectID, p.req.ProjectID != "" }
func (p jsonPromotion) BuildTypeID() (string, bool) { return p.req.BuildTypeID, p.req.BuildTypeID != "" }
func (p jsonPromotion) Features() map[string]string { return p.req.Features }
func (p jsonPromotion) SetAttribute(key, value string) {}
func (p jsonPromotion) Dependents() []sharedresources.CompositeMember { return nil }

// decideRequest is POST /decide's JSON body.
type decideRequest struct {
	Build      promotionRequest   `json:"build"`
	Running    []promotionRequest `json:"running"`
	PeerQueued []promotionRequest `json:"peer_queued"`
	Emulate    bool               `json:"emulate"`
}

// decideResponse is POST /decide's JSON response: Granted is true when
// Reason is empty.
type decideResponse struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"`
}

// Decide exposes arbiter.Arbiter.Decide as POST /decide, for a host
// scheduler that integrates over HTTP rather than importing this module
// as a Go library directly. This is the same one-question-per-call
// contract spec.md §1 describes, not a scheduling surface: it still
// answers "can this build start now?" and nothing else.
func (s *Server) Decide(a Arbiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.Session("decide")

		var req decideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		in := arbiter.Input{
			Build:   jsonPromotion{req.Build},
			Emulate: req.Emulate,
		}
		for _, p := range req.Running {
			in.Running = append(in.Running, sharedresources.RunningBuild{Promotion: jsonPromotion{p}})
		}
		for _, p := range req.PeerQueued {
			in.PeerQueued = append(in.PeerQueued, sharedresources.QueuedBuild{Promotion: jsonPromotion{p}})
		}

		reason := a.Decide(logger, in)

		resp := decideResponse{Granted: reason == nil}
		if reason != nil {
			resp.Reason = *reason
		}

		json.NewEncoder(w).Encode(resp)
	})
}
