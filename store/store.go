// Package store implements C4, the Persistent Lock Store: recording,
// for each running build, the exact locks (names, modes, values
// actually chosen) it holds, so the taken-lock tally survives the
// build's feature-parameter lifecycle.
package store

import sharedresources "github.com/concourse/sharedresources"

// Store is C4's public contract (spec.md §4.4).
//
//go:generate counterfeiter . Store
type Store interface {
	// Store persists the exact locks a build is holding. Called once
	// when the build starts.
	Store(promotionID string, locks []sharedresources.Lock) error

	// LocksStored reports whether promotionID has a persisted record.
	LocksStored(promotionID string) bool

	// Load returns the persisted locks for promotionID, keyed by name.
	Load(promotionID string) (map[string]sharedresources.Lock, error)

	// Remove deletes promotionID's record. Called when the build ends.
	Remove(promotionID string) error

	// All returns every persisted record, keyed by promotion id. Used
	// only by the read-only monitoring surface (api package); the
	// arbitration path never needs a store-wide scan.
	All() (map[string]map[string]sharedresources.Lock, error)
}
