// Package api serves the deliberately thin monitoring surface
// spec.md's Non-goals permit: a read-only, machine-readable snapshot of
// the resource registry, the current taken-lock tally, and the
// in-cycle affinity set, plus, when an Arbiter is supplied, POST
// /decide, which runs a Decide call (and so writes affinity unless the
// request sets emulate). It excludes the UI/CLI tabular display the
// Non-goals name; build-triggering stays out of this HTTP layer
// entirely.
package api

import (
	"net/http"

	"code.cloudfoundry.org/lager"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/affinity"
)

// Registry is the slice of registry.Registry the monitoring surface
// needs.
type Registry interface {
	OwnResources(projectID string) ([]sharedresources.Resource, error)
	Resolve(projectID string) (map[string]sharedresources.Resource, error)
}

// Store is the slice of store.Store the monitoring surface needs.
type Store interface {
	All() (map[string]map[string]sharedresources.Lock, error)
}

// Server holds the dependencies every handler method needs, the same
// shape the teacher's own HTTP server struct uses.
type Server struct {
	logger   lager.Logger
	registry Registry
	store    Store
	affinity *affinity.ResourceAffinity
	arbiter  Arbiter
}

// NewServer constructs a Server. arbiter may be nil, in which case
// Handler omits the POST /decide endpoint (a pure monitoring-only
// deployment).
func NewServer(logger lager.Logger, registry Registry, store Store, aff *affinity.ResourceAffinity, arb Arbiter) *Server {
	return &Server{
		logger:   logger.Session("api"),
		registry: registry,
		store:    store,
		affinity: aff,
		arbiter:  arb,
	}
}

// Handler builds the full mux for the monitoring surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/resources", s.ListResources())
	mux.Handle("/locks", s.ListLocks())
	mux.Handle("/affinity", s.ShowAffinity())
	if s.arbiter != nil {
		mux.Handle("/decide", s.Decide(s.arbiter))
	}
	return mux
}
