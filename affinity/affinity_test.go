package affinity_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/concourse/sharedresources/affinity"
)

func TestAffinity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Affinity Suite")
}

var _ = Describe("ResourceAffinity", func() {
	var a *affinity.ResourceAffinity

	BeforeEach(func() {
		a = affinity.New()
	})

	It("records picks and reports them as other-assigned to a different promotion", func() {
		a.Lock()
		a.Store("build-1", map[string]string{"res-1": "v1"})
		a.Unlock()

		a.Lock()
		defer a.Unlock()
		Expect(a.OtherAssignedValues("res-1", "build-2")).To(Equal(map[string]bool{"v1": true}))
		Expect(a.OtherAssignedValues("res-1", "build-1")).To(BeEmpty())
	})

	It("overwrites a promotion's prior entry on re-store", func() {
		a.Lock()
		a.Store("build-1", map[string]string{"res-1": "v1"})
		a.Store("build-1", map[string]string{"res-1": "v2"})
		a.Unlock()

		a.Lock()
		defer a.Unlock()
		Expect(a.OtherAssignedValues("res-1", "build-2")).To(Equal(map[string]bool{"v2": true}))
	})

	Describe("Actualize", func() {
		It("prunes entries whose promotion id is no longer live", func() {
			a.Lock()
			a.Store("build-1", map[string]string{"res-1": "v1"})
			a.Store("build-2", map[string]string{"res-1": "v2"})
			a.Unlock()

			a.Actualize(map[string]bool{"build-1": true})

			snapshot := a.Snapshot()
			Expect(snapshot).To(HaveKey("build-1"))
			Expect(snapshot).NotTo(HaveKey("build-2"))
		})
	})
})
