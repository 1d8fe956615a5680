package store

import (
	"fmt"

	"code.cloudfoundry.org/lager"
	"github.com/Masterminds/squirrel"

	sharedresources "github.com/concourse/sharedresources"
)

// Runner is the minimal squirrel surface SQLStore needs; dbng.Conn
// satisfies it directly.
type Runner interface {
	squirrel.BaseRunner
	QueryRow(query string, args ...interface{}) squirrel.RowScanner
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Notifier is the narrow slice of dbng.NotificationsBus SQLStore uses
// to announce a lock release; nil is accepted and treated as "no bus
// configured" (e.g. in tests that don't care about the notification).
type Notifier interface {
	Notify(channel string, payload string) error
}

const lockReleasedChannel = "lock-released"

// SQLStore is the Postgres-backed Store, one row per (promotion, lock
// name) in the resource_locks table migrations/002 creates.
type SQLStore struct {
	logger lager.Logger
	conn   Runner
	bus    Notifier // may be nil
}

// NewSQLStore constructs a Store backed by conn. bus may be nil, in
// which case Remove skips the release notification.
func NewSQLStore(logger lager.Logger, conn Runner, bus Notifier) *SQLStore {
	return &SQLStore{logger: logger, conn: conn, bus: bus}
}

func (s *SQLStore) Store(promotionID string, ls []sharedresources.Lock) error {
	logger := s.logger.Session("store", lager.Data{"build": promotionID})

	insert := psql.Insert("resource_locks").Columns("promotion_id", "name", "mode", "value")
	for _, l := range ls {
		insert = insert.Values(promotionID, l.Name, string(l.Mode), l.Value)
	}

	if len(ls) == 0 {
		return nil
	}

	_, err := insert.
		Suffix("ON CONFLICT (promotion_id, name) DO UPDATE SET mode = EXCLUDED.mode, value = EXCLUDED.value").
		RunWith(s.conn).
		Exec()
	if err != nil {
		// StorageError per spec.md §7: log and continue. The caller
		// (the host scheduler's start transition) decides whether a
		// failed persist blocks the start; the collector's fallback to
		// extraction bounds the damage either way.
		logger.Error("failed-to-persist-locks", err)
		return fmt.Errorf("persisting locks for %q: %w", promotionID, err)
	}

	return nil
}

func (s *SQLStore) LocksStored(promotionID string) bool {
	var count int
	err := psql.Select("count(*)").
		From("resource_locks").
		Where(squirrel.Eq{"promotion_id": promotionID}).
		RunWith(s.conn).
		QueryRow().
		Scan(&count)
	if err != nil {
		s.logger.Session("locks-stored").Error("failed-to-check-persisted-locks", err, lager.Data{"build": promotionID})
		return false
	}

	return count > 0
}

func (s *SQLStore) Load(promotionID string) (map[string]sharedresources.Lock, error) {
	rows, err := psql.Select("name", "mode", "value").
		From("resource_locks").
		Where(squirrel.Eq{"promotion_id": promotionID}).
		RunWith(s.conn).
		Query()
	if err != nil {
		return nil, fmt.Errorf("loading locks for %q: %w", promotionID, err)
	}
	defer rows.Close()

	out := map[string]sharedresources.Lock{}
	for rows.Next() {
		var (
			name, mode, value string
		)
		if err := rows.Scan(&name, &mode, &value); err != nil {
			return nil, fmt.Errorf("scanning lock row for %q: %w", promotionID, err)
		}

		out[name] = sharedresources.Lock{
			Name:  name,
			Mode:  sharedresources.LockMode(mode),
			Value: value,
		}
	}

	return out, rows.Err()
}

func (s *SQLStore) Remove(promotionID string) error {
	logger := s.logger.Session("remove", lager.Data{"build": promotionID})

	names, err := loadedNames(s.conn, promotionID)
	if err != nil {
		logger.Error("failed-to-load-names-before-remove", err)
		// fall through: still attempt the delete, and skip notification
		// since we don't know which resources were released.
	}

	_, err = psql.Delete("resource_locks").
		Where(squirrel.Eq{"promotion_id": promotionID}).
		RunWith(s.conn).
		Exec()
	if err != nil {
		logger.Error("failed-to-remove-locks", err)
		return fmt.Errorf("removing locks for %q: %w", promotionID, err)
	}

	if s.bus != nil {
		for _, name := range names {
			if notifyErr := s.bus.Notify(lockReleasedChannel, name); notifyErr != nil {
				logger.Error("failed-to-notify-lock-released", notifyErr, lager.Data{"resource": name})
			}
		}
	}

	return nil
}

func (s *SQLStore) All() (map[string]map[string]sharedresources.Lock, error) {
	rows, err := psql.Select("promotion_id", "name", "mode", "value").
		From("resource_locks").
		RunWith(s.conn).
		Query()
	if err != nil {
		return nil, fmt.Errorf("loading all locks: %w", err)
	}
	defer rows.Close()

	out := map[string]map[string]sharedresources.Lock{}
	for rows.Next() {
		var promotionID, name, mode, value string
		if err := rows.Scan(&promotionID, &name, &mode, &value); err != nil {
			return nil, fmt.Errorf("scanning lock row: %w", err)
		}

		if out[promotionID] == nil {
			out[promotionID] = map[string]sharedresources.Lock{}
		}
		out[promotionID][name] = sharedresources.Lock{
			Name:  name,
			Mode:  sharedresources.LockMode(mode),
			Value: value,
		}
	}

	return out, rows.Err()
}

func loadedNames(conn Runner, promotionID string) ([]string, error) {
	rows, err := psql.Select("name").
		From("resource_locks").
		Where(squirrel.Eq{"promotion_id": promotionID}).
		RunWith(conn).
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
