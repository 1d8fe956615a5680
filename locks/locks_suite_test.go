package locks_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestLocks(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Locks Suite")
}
