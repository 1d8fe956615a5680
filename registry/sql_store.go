package registry

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	sharedresources "github.com/concourse/sharedresources"
)

// Runner is the minimal squirrel runner surface the SQL store needs;
// dbng.Conn satisfies it (see dbng/open.go), matching the teacher's "to
// conform to squirrel.Runner interface" QueryRow adapter.
type Runner interface {
	squirrel.BaseRunner
	QueryRow(query string, args ...interface{}) squirrel.RowScanner
}

// psql is a $-placeholder squirrel builder, since the teacher targets
// Postgres via lib/pq throughout (dbng/open.go, db/pipeline_db_factory_test.go).
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// SQLStore is the Postgres-backed Store: one row per resource, in the
// "resources" table migrations/001_create_resources_table.go creates.
type SQLStore struct {
	conn Runner
}

// NewSQLStore constructs a Store backed by conn.
func NewSQLStore(conn Runner) *SQLStore {
	return &SQLStore{conn: conn}
}

func (s *SQLStore) OwnResources(projectID string) ([]sharedresources.Resource, error) {
	rows, err := psql.Select("id", "project_id", "name", "kind", "quota", "pool_values").
		From("resources").
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("name").
		RunWith(s.conn).
		Query()
	if err != nil {
		return nil, fmt.Errorf("querying own resources for project %q: %w", projectID, err)
	}
	defer rows.Close()

	var out []sharedresources.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}

	return out, rows.Err()
}

// SaveResource upserts a single resource definition. Out of scope per
// spec.md §1 (resource CRUD is a UI concern) but the store itself must
// expose a write path for whatever external surface owns that UI; kept
// narrow and unexported-adjacent so it's obviously not part of the
// arbitration read path.
func (s *SQLStore) SaveResource(res sharedresources.Resource) error {
	var quota sql.NullInt64
	if res.Kind == sharedresources.KindQuoted {
		quota = sql.NullInt64{Int64: int64(res.Quota), Valid: true}
	}

	_, err := psql.Insert("resources").
		Columns("id", "project_id", "name", "kind", "quota", "pool_values").
		Values(res.ID, res.ProjectID, res.Name, res.Kind.String(), quota, pq.Array(res.Values)).
		Suffix("ON CONFLICT (id) DO UPDATE SET project_id = EXCLUDED.project_id, name = EXCLUDED.name, kind = EXCLUDED.kind, quota = EXCLUDED.quota, pool_values = EXCLUDED.pool_values").
		RunWith(s.conn).
		Exec()
	if err != nil {
		return fmt.Errorf("saving resource %q: %w", res.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (sharedresources.Resource, error) {
	var (
		res    sharedresources.Resource
		kind   string
		quota  sql.NullInt64
		values []string
	)

	err := row.Scan(&res.ID, &res.ProjectID, &res.Name, &kind, &quota, pq.Array(&values))
	if err != nil {
		return sharedresources.Resource{}, fmt.Errorf("scanning resource row: %w", err)
	}

	switch kind {
	case "quoted":
		res.Kind = sharedresources.KindQuoted
		if quota.Valid {
			res.Quota = int(quota.Int64)
		} else {
			res.Quota = sharedresources.Infinite
		}
	case "custom":
		res.Kind = sharedresources.KindCustom
		res.Values = values
	default:
		return sharedresources.Resource{}, fmt.Errorf("unrecognized resource kind %q", kind)
	}

	return res, nil
}
