package options

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MySQLStore keeps records in the options table.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec, `
		SELECT id, option_name, option_value, version, updated_by, created_at, updated_at
		FROM options
		WHERE option_name = ?
	`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get option %s: %w", name, err)
	}
	return &rec, nil
}

// Set upserts the row in one statement, so concurrent saves are serialized by
// the database and the last one wins.
func (s *MySQLStore) Set(ctx context.Context, name string, value []byte, updatedBy int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO options (option_name, option_value, version, updated_by)
		VALUES (?, ?, 1, ?)
		ON DUPLICATE KEY UPDATE
			option_value = VALUES(option_value),
			version = version + 1,
			updated_by = VALUES(updated_by),
			updated_at = CURRENT_TIMESTAMP
	`, name, value, sql.NullInt64{Int64: updatedBy, Valid: updatedBy != 0})
	if err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}
