// Package migrations lists the schema migrations dbng.Open runs on
// every connect, in the same shape as the teacher's
// db/migrations package: one exported function per migration, a single
// Migrations slice giving them an order, and
// github.com/BurntSushi/migration's LimitedTx as the only thing a
// migration touches.
package migrations

import "github.com/BurntSushi/migration"

// Migrations is passed straight to migration.Open by dbng.Open, in
// ascending order. Migrations are additive only — never edit a
// published migration, add a new one.
var Migrations = []migration.Migrator{
	CreateResourcesTable,
	CreateResourceLocksTable,
}
