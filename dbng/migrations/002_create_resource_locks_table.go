package migrations

import "github.com/BurntSushi/migration"

// CreateResourceLocksTable creates the table store.SQLStore uses for
// C4's persisted per-running-build lock record: one row per lock a
// running build actually holds, keyed by the running build's promotion
// id, so the record survives the build's feature-parameter lifecycle
// (spec.md §4.4).
func CreateResourceLocksTable(tx migration.LimitedTx) error {
	_, err := tx.Exec(`
		CREATE TABLE resource_locks (
			promotion_id text NOT NULL,
			name text NOT NULL,
			mode text NOT NULL CHECK (mode IN ('readLock', 'writeLock')),
			value text NOT NULL DEFAULT '',
			PRIMARY KEY (promotion_id, name)
		);
	`)
	return err
}
