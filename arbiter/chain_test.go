package arbiter_test

import (
	"code.cloudfoundry.org/lager/lagertest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/affinity"
	"github.com/concourse/sharedresources/arbiter"
	"github.com/concourse/sharedresources/arbiter/arbiterfakes"
	"github.com/concourse/sharedresources/locks"
	"github.com/concourse/sharedresources/sharedresourcesfakes"
)

// newPromotion builds a fake promotion carrying one WRITE lock on
// resourceName, scoped to project-1.
func newPromotion(id, resourceName string) *sharedresourcesfakes.FakeBuildPromotion {
	p := new(sharedresourcesfakes.FakeBuildPromotion)
	p.IDStub = func() string { return id }
	p.ProjectIDStub = func() (string, bool) { return "project-1", true }
	p.BuildTypeIDStub = func() (string, bool) { return "bt-1", true }
	p.FeaturesStub = func() map[string]string {
		return map[string]string{locks.FeatureParamName: resourceName + " writeLock \n"}
	}
	return p
}

var _ = Describe("Build chains", func() {
	var (
		registry  *arbiterfakes.FakeRegistry
		inspector *arbiterfakes.FakeInspector
		collector *arbiterfakes.FakeCollector
		aff       *affinity.ResourceAffinity
		a         arbiter.Arbiter
	)

	BeforeEach(func() {
		registry = new(arbiterfakes.FakeRegistry)
		inspector = new(arbiterfakes.FakeInspector)
		collector = new(arbiterfakes.FakeCollector)
		aff = affinity.New()

		inspector.InspectReturns(nil, nil)
		collector.CollectReturns(map[string]sharedresources.TakenLock{})
		registry.ResolveReturns(map[string]sharedresources.Resource{
			"mutex": sharedresources.NewQuotedResource("res-1", "project-1", "mutex", 1),
		}, nil)

		a = arbiter.New(registry, inspector, collector, aff, func(id string) string { return id })
	})

	Context("when a chain member that is already running holds the resource", func() {
		It("is transparent: the chain member granting the lock does not make its own sibling contend for it", func() {
			running := newPromotion("ancestor-1", "mutex")

			build := newPromotion("build-1", "mutex")
			build.DependentsStub = func() []sharedresources.CompositeMember {
				return []sharedresources.CompositeMember{
					{Promotion: running, Running: true},
				}
			}

			collector.CollectReturns(map[string]sharedresources.TakenLock{
				"mutex": {
					Name:       "mutex",
					WriteLocks: []sharedresources.Holder{{PromotionID: "ancestor-1"}},
				},
			})

			reason := a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build})
			Expect(reason).To(BeNil())
		})
	})

	Context("when a still-queued chain peer needs the same resource first", func() {
		It("arbitrates the peer before the build, and grants both", func() {
			peer := newPromotion("peer-1", "mutex")

			build := newPromotion("build-1", "mutex")
			build.DependentsStub = func() []sharedresources.CompositeMember {
				return []sharedresources.CompositeMember{
					{Promotion: peer, Running: false},
				}
			}

			reason := a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build})
			Expect(reason).To(BeNil())
		})
	})

	Context("when resourcesInChains is disabled", func() {
		It("treats every build as standalone, ignoring Dependents", func() {
			a = arbiter.New(registry, inspector, collector, aff, func(id string) string { return id },
				arbiter.WithResourcesInChains(false))

			outsider := newPromotion("outsider-1", "mutex")
			collector.CollectReturns(map[string]sharedresources.TakenLock{
				"mutex": {
					Name:       "mutex",
					WriteLocks: []sharedresources.Holder{{PromotionID: "outsider-1"}},
				},
			})

			build := newPromotion("build-1", "mutex")
			build.DependentsStub = func() []sharedresources.CompositeMember {
				return []sharedresources.CompositeMember{
					{Promotion: outsider, Running: true},
				}
			}

			reason := a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build})
			Expect(reason).NotTo(BeNil())
		})
	})

	Context("when an outside (non-chain) holder has the resource", func() {
		It("still denies: chain transparency only applies within the chain", func() {
			build := newPromotion("build-1", "mutex")
			build.DependentsStub = func() []sharedresources.CompositeMember { return nil }

			collector.CollectReturns(map[string]sharedresources.TakenLock{
				"mutex": {
					Name:       "mutex",
					WriteLocks: []sharedresources.Holder{{PromotionID: "stranger-1"}},
				},
			})

			reason := a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build})
			Expect(reason).NotTo(BeNil())
		})
	})
})
