package migrations

import "github.com/BurntSushi/migration"

// CreateResourcesTable creates the table registry.SQLStore reads and
// writes: one row per Resource (spec.md §3), distinguishing Quoted from
// Custom by a quota/pool_values pair where exactly one side is
// populated. Deliberately no uniqueness constraint on (project_id,
// name): two resources sharing a name at one project level is a
// configuration error inspect.Inspector flags at arbitration time
// (spec.md §4.7), not one the schema prevents outright.
func CreateResourcesTable(tx migration.LimitedTx) error {
	_, err := tx.Exec(`
		CREATE TABLE resources (
			id text PRIMARY KEY,
			project_id text NOT NULL,
			name text NOT NULL,
			kind text NOT NULL CHECK (kind IN ('quoted', 'custom')),
			quota integer NULL,
			pool_values text[] NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		CREATE INDEX resources_project_id_name_idx ON resources (project_id, name);
	`)
	return err
}
