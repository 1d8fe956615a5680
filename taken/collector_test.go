package taken_test

import (
	"testing"

	"code.cloudfoundry.org/lager/lagertest"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/locks"
	"github.com/concourse/sharedresources/store"
	"github.com/concourse/sharedresources/taken"
)

func TestTaken(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Taken Suite")
}

type fakePromotion struct {
	id        string
	projectID string
	features  map[string]string
}

func (p *fakePromotion) ID() string                        { return p.id }
func (p *fakePromotion) ProjectID() (string, bool)          { return p.projectID, p.projectID != "" }
func (p *fakePromotion) BuildTypeID() (string, bool)        { return "", false }
func (p *fakePromotion) Features() map[string]string        { return p.features }
func (p *fakePromotion) SetAttribute(key, value string)     {}
func (p *fakePromotion) Dependents() []sharedresources.CompositeMember {
	return nil
}

var _ = Describe("Collect", func() {
	var (
		logger  = lagertest.NewTestLogger("test")
		memory  *store.MemoryStore
	)

	BeforeEach(func() {
		memory = store.NewMemoryStore()
	})

	It("prefers a persisted record over extraction for running builds", func() {
		running := &fakePromotion{
			id:        "b1",
			projectID: "p1",
			features: map[string]string{
				locks.FeatureParamName: "mutex readLock \n",
			},
		}
		Expect(memory.Store("b1", []sharedresources.Lock{
			{Name: "mutex", Mode: sharedresources.WriteLock},
		})).To(Succeed())

		tally := taken.Collect(logger, memory,
			[]sharedresources.RunningBuild{{Promotion: running}},
			nil,
			"p1",
		)

		Expect(tally["mutex"].WriteLocks).To(ConsistOf(sharedresources.Holder{PromotionID: "b1"}))
		Expect(tally["mutex"].ReadLocks).To(BeEmpty())
	})

	It("falls back to extraction when no persisted record exists", func() {
		running := &fakePromotion{
			id:        "b1",
			projectID: "p1",
			features: map[string]string{
				locks.FeatureParamName: "mutex writeLock \n",
			},
		}

		tally := taken.Collect(logger, memory,
			[]sharedresources.RunningBuild{{Promotion: running}},
			nil,
			"p1",
		)

		Expect(tally["mutex"].WriteLocks).To(ConsistOf(sharedresources.Holder{PromotionID: "b1"}))
	})

	It("always extracts for peer-queued builds", func() {
		queued := &fakePromotion{
			id:        "b2",
			projectID: "p1",
			features: map[string]string{
				locks.FeatureParamName: "agent-pool readLock a1\n",
			},
		}

		tally := taken.Collect(logger, memory,
			nil,
			[]sharedresources.QueuedBuild{{Promotion: queued}},
			"p1",
		)

		Expect(tally["agent-pool"].ReadLocks).To(ConsistOf(sharedresources.Holder{PromotionID: "b2", Value: "a1"}))
	})

	It("excludes builds outside the requested project scope", func() {
		other := &fakePromotion{
			id:        "b3",
			projectID: "other-project",
			features: map[string]string{
				locks.FeatureParamName: "mutex writeLock \n",
			},
		}

		tally := taken.Collect(logger, memory,
			[]sharedresources.RunningBuild{{Promotion: other}},
			nil,
			"p1",
		)

		Expect(tally).To(BeEmpty())
	})
})
