package store_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/store"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("MemoryStore", func() {
	var s *store.MemoryStore

	BeforeEach(func() {
		s = store.NewMemoryStore()
	})

	It("round-trips a persisted record", func() {
		Expect(s.LocksStored("build-1")).To(BeFalse())

		err := s.Store("build-1", []sharedresources.Lock{
			{Name: "mutex", Mode: sharedresources.WriteLock},
			{Name: "agent-pool", Mode: sharedresources.ReadLock, Value: "a1"},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(s.LocksStored("build-1")).To(BeTrue())

		loaded, err := s.Load("build-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(HaveLen(2))
		Expect(loaded["mutex"]).To(Equal(sharedresources.Lock{Name: "mutex", Mode: sharedresources.WriteLock}))
		Expect(loaded["agent-pool"]).To(Equal(sharedresources.Lock{Name: "agent-pool", Mode: sharedresources.ReadLock, Value: "a1"}))
	})

	It("forgets a record on Remove", func() {
		Expect(s.Store("build-1", []sharedresources.Lock{{Name: "mutex", Mode: sharedresources.WriteLock}})).To(Succeed())
		Expect(s.Remove("build-1")).To(Succeed())
		Expect(s.LocksStored("build-1")).To(BeFalse())
	})
})
