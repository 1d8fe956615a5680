package locks_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	sharedresources "github.com/concourse/sharedresources"
	"github.com/concourse/sharedresources/locks"
)

var _ = Describe("Extract", func() {
	Context("with the primary feature-parameter encoding", func() {
		It("parses name/mode/value lines", func() {
			features := map[string]string{
				locks.FeatureParamName: "mutex writeLock \nagent-pool readLock a1\n",
			}

			extracted := locks.Extract(features)
			Expect(extracted).To(ConsistOf(
				sharedresources.Lock{Name: "mutex", Mode: sharedresources.WriteLock, Value: ""},
				sharedresources.Lock{Name: "agent-pool", Mode: sharedresources.ReadLock, Value: "a1"},
			))
		})

		It("collapses duplicate names keeping the first occurrence", func() {
			features := map[string]string{
				locks.FeatureParamName: "mutex writeLock \nmutex readLock \n",
			}

			extracted := locks.Extract(features)
			Expect(extracted).To(Equal([]sharedresources.Lock{
				{Name: "mutex", Mode: sharedresources.WriteLock, Value: ""},
			}))
		})

		It("ignores malformed lines", func() {
			features := map[string]string{
				locks.FeatureParamName: "just-a-name\nmutex bogusMode value\nagent-pool readLock a1\n",
			}

			extracted := locks.Extract(features)
			Expect(extracted).To(Equal([]sharedresources.Lock{
				{Name: "agent-pool", Mode: sharedresources.ReadLock, Value: "a1"},
			}))
		})
	})

	Context("with the legacy per-parameter encoding", func() {
		It("parses teamcity.locks.<mode>.<name> parameters", func() {
			features := map[string]string{
				"teamcity.locks.readLock.agent-pool":  "a1",
				"teamcity.locks.writeLock.mutex":      "",
				"teamcity.configuration.other.param":  "unrelated",
			}

			extracted := locks.Extract(features)
			Expect(extracted).To(ConsistOf(
				sharedresources.Lock{Name: "agent-pool", Mode: sharedresources.ReadLock, Value: "a1"},
				sharedresources.Lock{Name: "mutex", Mode: sharedresources.WriteLock, Value: ""},
			))
		})

		It("prefers the primary encoding over the legacy one for the same name", func() {
			features := map[string]string{
				locks.FeatureParamName:                "mutex readLock \n",
				"teamcity.locks.writeLock.mutex": "",
			}

			extracted := locks.Extract(features)
			Expect(extracted).To(Equal([]sharedresources.Lock{
				{Name: "mutex", Mode: sharedresources.ReadLock, Value: ""},
			}))
		})
	})

	Context("with no lock-declaring feature", func() {
		It("returns no locks", func() {
			Expect(locks.Extract(map[string]string{"unrelated": "param"})).To(BeEmpty())
			Expect(locks.Extract(nil)).To(BeEmpty())
		})
	})
})
