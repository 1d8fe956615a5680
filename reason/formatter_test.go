package reason_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/reason"
)

func TestReason(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reason Suite")
}

func label(id string) string {
	return map[string]string{"b1": "bt-one", "b2": "bt-two"}[id]
}

var _ = Describe("Format", func() {
	It("names the resource and its deduplicated, sorted holders", func() {
		taken := map[string]sharedresources.TakenLock{
			"mutex": {
				Name:       "mutex",
				ReadLocks:  []sharedresources.Holder{{PromotionID: "b2"}, {PromotionID: "b1"}},
				WriteLocks: nil,
			},
		}
		unavailable := []sharedresources.Lock{{Name: "mutex", Mode: sharedresources.WriteLock}}

		Expect(reason.Format(taken, unavailable, label)).To(Equal(
			"Build is waiting for the following resource to become available: mutex (locked by bt-one, bt-two)",
		))
	})

	It("omits the holder list when no taken lock is recorded", func() {
		unavailable := []sharedresources.Lock{{Name: "pool", Mode: sharedresources.ReadLock}}

		Expect(reason.Format(nil, unavailable, label)).To(Equal(
			"Build is waiting for the following resource to become available: pool",
		))
	})

	It("pluralizes and sorts across multiple resources", func() {
		unavailable := []sharedresources.Lock{
			{Name: "zeta", Mode: sharedresources.ReadLock},
			{Name: "alpha", Mode: sharedresources.WriteLock},
		}

		Expect(reason.Format(nil, unavailable, label)).To(Equal(
			"Build is waiting for the following resources to become available: alpha, zeta",
		))
	})
})

var _ = Describe("FormatConfigurationErrors", func() {
	It("names every misconfigured lock, sorted", func() {
		errs := map[string]sharedresources.ConfigurationError{
			"zeta":  sharedresources.UndefinedResourceError("zeta"),
			"alpha": sharedresources.DuplicateNameError("alpha"),
		}

		Expect(reason.FormatConfigurationErrors(errs)).To(Equal(
			"Build cannot start due to a shared resource configuration error: alpha (multiple resources are defined with this name at the same project level); zeta (no resource with this name is defined)",
		))
	})
})
