// Package dbng is the Postgres connection layer underlying the
// Persistent Lock Store (C4) and the Resource Registry's SQL-backed
// Store: a thin wrapper around database/sql adding a squirrel.Runner
// adapter, schema migrations on Open, and a LISTEN/NOTIFY bus so C4 can
// announce lock releases without polling. Adapted directly from the
// teacher's dbng/open.go.
package dbng

import (
	"database/sql"
	"database/sql/driver"
	"strings"
	"time"

	"code.cloudfoundry.org/lager"

	"github.com/BurntSushi/migration"
	"github.com/Masterminds/squirrel"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/lib/pq"

	"github.com/concourse/sharedresources/dbng/migrations"
)

// Conn is the connection handle every SQL-backed component in this
// module depends on, instead of *sql.DB directly, so tests can
// substitute an in-memory double.
type Conn interface {
	Bus() NotificationsBus
	Close() error

	Driver() driver.Driver
	Exec(query string, args ...interface{}) (sql.Result, error)
	Ping() error
	Prepare(query string) (*sql.Stmt, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) squirrel.RowScanner
	SetMaxIdleConns(n int)
	SetMaxOpenConns(n int)
	Stats() sql.DBStats
}

// Open connects to sqlDataSource, running migrations.Migrations before
// returning, and retries on a dial failure rather than failing startup
// outright (Postgres frequently isn't up yet when this binary starts in
// a container alongside it).
func Open(logger lager.Logger, sqlDriver string, sqlDataSource string) (Conn, error) {
	for {
		sqlDB, err := migration.Open(sqlDriver, sqlDataSource, migrations.Migrations)
		if err != nil {
			if strings.Contains(err.Error(), " dial ") {
				logger.Error("failed-to-open-db-retrying", err)
				time.Sleep(5 * time.Second)
				continue
			}

			return nil, err
		}

		listener := pq.NewListener(sqlDataSource, time.Second, time.Minute, nil)

		return &db{
			DB:  sqlDB,
			bus: NewNotificationsBus(listener, sqlDB),
		}, nil
	}
}

type db struct {
	*sql.DB

	bus NotificationsBus
}

func (d *db) Bus() NotificationsBus {
	return d.bus
}

func (d *db) Close() error {
	var errs error
	if err := d.DB.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := d.bus.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

// QueryRow conforms db to squirrel.Runner.
func (d *db) QueryRow(query string, args ...interface{}) squirrel.RowScanner {
	return d.DB.QueryRow(query, args...)
}
