// Package locks implements C2, the Lock Extractor: turning a build's
// declared feature parameters into the set of Lock values it wants.
package locks

import (
	"sort"
	"strings"

	sharedresources "github.com/concourse/sharedresources"
)

// FeatureParamName is the single feature parameter whose value is a
// newline-terminated block of "name mode value" lines (spec.md §6's
// primary encoding).
const FeatureParamName = "teamcity.locks.feature.param"

const legacyKeyPrefix = "teamcity.locks."

// Extract reads a build's feature parameters and returns its declared
// locks, deduplicated by name (first occurrence wins, per spec.md §4.2).
// It understands both encodings spec.md §6 describes: the primary
// newline-block parameter, and the legacy
// teamcity.locks.<mode>.<name>=<value> parameters used when reading
// locks off a build that's already running and whose originating
// feature may no longer be reachable.
func Extract(features map[string]string) []sharedresources.Lock {
	if len(features) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var out []sharedresources.Lock

	if block, ok := features[FeatureParamName]; ok {
		for _, l := range parseBlock(block) {
			if seen[l.Name] {
				continue
			}
			seen[l.Name] = true
			out = append(out, l)
		}
	}

	for _, l := range parseLegacy(features) {
		if seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		out = append(out, l)
	}

	return out
}

// parseBlock parses the primary "name<SP>mode<SP>value\n" encoding.
func parseBlock(block string) []sharedresources.Lock {
	var out []sharedresources.Lock

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 {
			continue
		}

		l := sharedresources.Lock{
			Name: fields[0],
			Mode: sharedresources.LockMode(fields[1]),
		}
		if len(fields) == 3 {
			l.Value = fields[2]
		}
		if l.Mode != sharedresources.ReadLock && l.Mode != sharedresources.WriteLock {
			continue
		}

		out = append(out, l)
	}

	return out
}

// parseLegacy parses teamcity.locks.readLock.<name> / .writeLock.<name>
// parameters, in a deterministic (sorted-by-key) order so Extract's
// dedup is itself deterministic across calls with the same features map.
func parseLegacy(features map[string]string) []sharedresources.Lock {
	keys := make([]string, 0, len(features))
	for k := range features {
		if strings.HasPrefix(k, legacyKeyPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []sharedresources.Lock
	for _, k := range keys {
		rest := strings.TrimPrefix(k, legacyKeyPrefix)

		var mode sharedresources.LockMode
		switch {
		case strings.HasPrefix(rest, string(sharedresources.ReadLock)+"."):
			mode = sharedresources.ReadLock
			rest = strings.TrimPrefix(rest, string(sharedresources.ReadLock)+".")
		case strings.HasPrefix(rest, string(sharedresources.WriteLock)+"."):
			mode = sharedresources.WriteLock
			rest = strings.TrimPrefix(rest, string(sharedresources.WriteLock)+".")
		default:
			continue
		}

		if rest == "" {
			continue
		}

		out = append(out, sharedresources.Lock{
			Name:  rest,
			Mode:  mode,
			Value: features[k],
		})
	}

	return out
}
