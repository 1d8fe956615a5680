package arbiter_test

import (
	"errors"

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

var _ = Describe("Arbiter", func() {
	var (
		registry  *arbiterfakes.FakeRegistry
		inspector *arbiterfakes.FakeInspector
		collector *arbiterfakes.FakeCollector
		aff       *affinity.ResourceAffinity
		a         arbiter.Arbiter

		build *sharedresourcesfakes.FakeBuildPromotion
	)

	label := func(promotionID string) string { return promotionID }

	BeforeEach(func() {
		registry = new(arbiterfakes.FakeRegistry)
		inspector = new(arbiterfakes.FakeInspector)
		collector = new(arbiterfakes.FakeCollector)
		aff = affinity.New()

		inspector.InspectReturns(nil, nil)
		collector.CollectReturns(map[string]sharedresources.TakenLock{})

		a = arbiter.New(registry, inspector, collector, aff, label)

		build = new(sharedresourcesfakes.FakeBuildPromotion)
		build.IDStub = func() string { return "build-1" }
		build.ProjectIDStub = func() (string, bool) { return "project-1", true }
		build.BuildTypeIDStub = func() (string, bool) { return "bt-1", true }
	})

	decide := func() *string {
		return a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build})
	}

	Context("with a build that declares no locks", func() {
		BeforeEach(func() {
			build.FeaturesStub = func() map[string]string { return map[string]string{} }
		})

		It("grants immediately without consulting the registry", func() {
			Expect(decide()).To(BeNil())
			Expect(registry.ResolveCallCount()).To(Equal(0))
		})
	})

	Context("with a build missing a project id", func() {
		BeforeEach(func() {
			build.ProjectIDStub = func() (string, bool) { return "", false }
			build.FeaturesStub = func() map[string]string {
				return map[string]string{locks.FeatureParamName: "mutex writeLock \n"}
			}
		})

		It("grants silently", func() {
			Expect(decide()).To(BeNil())
		})
	})

	Context("with a misconfigured lock", func() {
		BeforeEach(func() {
			build.FeaturesStub = func() map[string]string {
				return map[string]string{locks.FeatureParamName: "ghost writeLock \n"}
			}
			inspector.InspectReturns(map[string]sharedresources.ConfigurationError{
				"ghost": sharedresources.UndefinedResourceError("ghost"),
			}, nil)
		})

		It("denies with a configuration-error reason", func() {
			reason := decide()
			Expect(reason).NotTo(BeNil())
			Expect(*reason).To(ContainSubstring("configuration error"))
			Expect(*reason).To(ContainSubstring("ghost"))
		})
	})

	Context("against a Quoted resource", func() {
		BeforeEach(func() {
			build.FeaturesStub = func() map[string]string {
				return map[string]string{locks.FeatureParamName: "mutex readLock \n"}
			}
		})

		Context("with a finite quota already exhausted", func() {
			BeforeEach(func() {
				registry.ResolveReturns(map[string]sharedresources.Resource{
					"mutex": sharedresources.NewQuotedResource("res-1", "project-1", "mutex", 1),
				}, nil)
				collector.CollectReturns(map[string]sharedresources.TakenLock{
					"mutex": {
						Name:      "mutex",
						ReadLocks: []sharedresources.Holder{{PromotionID: "holder-1"}},
					},
				})
			})

			It("denies and names the holder", func() {
				reason := decide()
				Expect(reason).NotTo(BeNil())
				Expect(*reason).To(ContainSubstring("mutex"))
				Expect(*reason).To(ContainSubstring("holder-1"))
			})
		})

		Context("with infinite capacity", func() {
			BeforeEach(func() {
				registry.ResolveReturns(map[string]sharedresources.Resource{
					"mutex": sharedresources.NewQuotedResource("res-1", "project-1", "mutex", sharedresources.Infinite),
				}, nil)
				collector.CollectReturns(map[string]sharedresources.TakenLock{
					"mutex": {
						Name: "mutex",
						ReadLocks: []sharedresources.Holder{
							{PromotionID: "holder-1"}, {PromotionID: "holder-2"}, {PromotionID: "holder-3"},
						},
					},
				})
			})

			It("always grants READ regardless of how many holders exist", func() {
				Expect(decide()).To(BeNil())
			})
		})

		Context("requesting WRITE while any READ is held", func() {
			BeforeEach(func() {
				build.FeaturesStub = func() map[string]string {
					return map[string]string{locks.FeatureParamName: "mutex writeLock \n"}
				}
				registry.ResolveReturns(map[string]sharedresources.Resource{
					"mutex": sharedresources.NewQuotedResource("res-1", "project-1", "mutex", sharedresources.Infinite),
				}, nil)
				collector.CollectReturns(map[string]sharedresources.TakenLock{
					"mutex": {
						Name:      "mutex",
						ReadLocks: []sharedresources.Holder{{PromotionID: "holder-1"}},
					},
				})
			})

			It("denies: WRITE needs exclusivity even against infinite quota", func() {
				Expect(decide()).NotTo(BeNil())
			})
		})
	})

	Context("against a Custom resource", func() {
		BeforeEach(func() {
			registry.ResolveReturns(map[string]sharedresources.Resource{
				"agent-pool": sharedresources.NewCustomResource("res-2", "project-1", "agent-pool", []string{"a1", "a2"}),
			}, nil)
		})

		Context("requesting ANY with one value already taken", func() {
			BeforeEach(func() {
				build.FeaturesStub = func() map[string]string {
					return map[string]string{locks.FeatureParamName: "agent-pool readLock \n"}
				}
				collector.CollectReturns(map[string]sharedresources.TakenLock{
					"agent-pool": {
						Name:      "agent-pool",
						ReadLocks: []sharedresources.Holder{{PromotionID: "holder-1", Value: "a1"}},
					},
				})
			})

			It("grants and stamps the sole remaining free value", func() {
				Expect(decide()).To(BeNil())
				Expect(build.SetAttributeCallCount()).To(Equal(1))
				key, value := build.SetAttributeArgsForCall(0)
				Expect(key).To(Equal(arbiter.StampKeyPrefix + "res-2"))
				Expect(value).To(Equal("a2"))
			})
		})

		Context("requesting ALL write while any lock is held", func() {
			BeforeEach(func() {
				build.FeaturesStub = func() map[string]string {
					return map[string]string{locks.FeatureParamName: "agent-pool writeLock \n"}
				}
				collector.CollectReturns(map[string]sharedresources.TakenLock{
					"agent-pool": {
						Name:      "agent-pool",
						ReadLocks: []sharedresources.Holder{{PromotionID: "holder-1", Value: "a1"}},
					},
				})
			})

			It("denies", func() {
				Expect(decide()).NotTo(BeNil())
			})
		})

		Context("emulate mode", func() {
			BeforeEach(func() {
				build.FeaturesStub = func() map[string]string {
					return map[string]string{locks.FeatureParamName: "agent-pool readLock \n"}
				}
				collector.CollectReturns(map[string]sharedresources.TakenLock{})
			})

			It("grants without stamping an attribute or writing affinity", func() {
				reason := a.Decide(lagertest.NewTestLogger("arbiter"), arbiter.Input{Build: build, Emulate: true})
				Expect(reason).To(BeNil())
				Expect(build.SetAttributeCallCount()).To(Equal(0))
				Expect(aff.Snapshot()).To(BeEmpty())
			})
		})
	})

	Context("when the inspector returns an internal error", func() {
		BeforeEach(func() {
			build.FeaturesStub = func() map[string]string {
				return map[string]string{locks.FeatureParamName: "mutex readLock \n"}
			}
			inspector.InspectReturns(nil, errors.New("boom"))
		})

		It("grants rather than blocking a build on an internal bug", func() {
			Expect(decide()).To(BeNil())
		})
	})
})
