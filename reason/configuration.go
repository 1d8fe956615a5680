package reason

import (
	"fmt"
	"sort"
	"strings"

	sharedresources "github.com/concourse/sharedresources"
)

// FormatConfigurationErrors renders the wait reason the arbiter returns
// when inspect.Inspector flags one or more locks as misconfigured
// (spec.md §4.6's precondition: "If C7 reports misconfiguration for this
// build, the arbiter returns a 'configuration error' wait reason
// immediately").
func FormatConfigurationErrors(errs map[string]sharedresources.ConfigurationError) string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, errs[name].Reason))
	}

	return fmt.Sprintf("Build cannot start due to a shared resource configuration error: %s", strings.Join(parts, "; "))
}
