// Package reason implements C8, the Wait-Reason Formatter: turning a
// set of unavailable locks and the taken-lock tally into the
// human-readable string the host scheduler surfaces to a waiting build.
package reason

import (
	"fmt"
	"sort"
	"strings"

	sharedresources "github.com/concourse/sharedresources"
)

// Format produces spec.md §4.8's single-string wait reason:
//
//	Build is waiting for the following resource[s] to become available: <name1> (locked by <bt1>, <bt2>), <name2>, ...
//
// The build-type list per resource is deduplicated, lexicographically
// sorted, and omitted entirely when empty (an affinity-denied Custom
// READ can have no running holder yet in this project).
func Format(taken map[string]sharedresources.TakenLock, unavailable []sharedresources.Lock, holderLabel func(promotionID string) string) string {
	names := uniqueSortedNames(unavailable)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, formatOne(name, taken[name], holderLabel))
	}

	return fmt.Sprintf(
		"Build is waiting for the following resource%s to become available: %s",
		plural(len(names)),
		strings.Join(parts, ", "),
	)
}

func formatOne(name string, t sharedresources.TakenLock, holderLabel func(string) string) string {
	holders := map[string]bool{}
	for _, h := range t.ReadLocks {
		holders[holderLabel(h.PromotionID)] = true
	}
	for _, h := range t.WriteLocks {
		holders[holderLabel(h.PromotionID)] = true
	}

	if len(holders) == 0 {
		return name
	}

	labels := make([]string, 0, len(holders))
	for l := range holders {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	return fmt.Sprintf("%s (locked by %s)", name, strings.Join(labels, ", "))
}

func uniqueSortedNames(ls []sharedresources.Lock) []string {
	seen := map[string]bool{}
	var names []string
	for _, l := range ls {
		if !seen[l.Name] {
			seen[l.Name] = true
			names = append(names, l.Name)
		}
	}
	sort.Strings(names)
	return names
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
