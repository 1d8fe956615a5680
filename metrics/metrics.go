// Package metrics exposes the arbiter's decision counters and the
// affinity set's size as Prometheus collectors. This is ambient
// observability, not the lock-usage reporting UI spec.md's Non-goals
// exclude: a /metrics endpoint, not a tabular display.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/concourse/sharedresources/affinity"
)

const namespace = "sharedresources"

var (
	grantsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grants_total",
		Help:      "Number of Decide calls that returned a grant (nil wait reason).",
	})

	denialsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "denials_total",
		Help:      "Number of Decide calls that returned a wait reason, labeled by the kind of denial.",
	}, []string{"reason_kind"})

	affinitySetSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "affinity_set_size",
		Help:      "Number of promotions currently holding an in-cycle affinity reservation.",
	})
)

// Recorder is the arbiter.Recorder shape: RecordGrant/RecordDenial are
// called once per Decide call. Defined here (rather than imported from
// arbiter) to avoid metrics depending on arbiter's decision-core
// package; arbiter depends on this shape structurally instead.
type Recorder struct{}

// New constructs a Recorder and registers its collectors with reg.
// Call once at process start with prometheus.DefaultRegisterer, or a
// dedicated registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	reg.MustRegister(grantsTotal, denialsTotal, affinitySetSize)
	return &Recorder{}
}

// RecordGrant increments the grant counter.
func (r *Recorder) RecordGrant() {
	grantsTotal.Inc()
}

// RecordDenial increments the denial counter for reasonKind (the
// arbiter passes "configuration" or "contention").
func (r *Recorder) RecordDenial(reasonKind string) {
	denialsTotal.WithLabelValues(reasonKind).Inc()
}

// ObserveAffinitySize sets the affinity-set-size gauge from a live
// snapshot. Intended to be called on a short ticker by cmd's wiring.
func ObserveAffinitySize(aff *affinity.ResourceAffinity) {
	affinitySetSize.Set(float64(len(aff.Snapshot())))
}
