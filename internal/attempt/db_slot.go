package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/spivocab/internal/database"
)

// DBSlot stores the value in one row of the storage_slots table.
type DBSlot struct {
	db  *sqlx.DB
	key string
}

func NewDBSlot(db *sqlx.DB, key string) *DBSlot {
	return &DBSlot{db: db, key: key}
}

func (s *DBSlot) Get(ctx context.Context) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM storage_slots WHERE slot_key = ?", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select storage slot(%s): %w", s.key, err)
	}
	return value, true, nil
}

// Set replaces the row in a transaction. Delete and insert keep the statements
// portable between MySQL and SQLite.
func (s *DBSlot) Set(ctx context.Context, value string) error {
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM storage_slots WHERE slot_key = ?", s.key); err != nil {
			return fmt.Errorf("delete storage slot(%s): %w", s.key, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO storage_slots (slot_key, value) VALUES (?, ?)", s.key, value); err != nil {
			return fmt.Errorf("insert storage slot(%s): %w", s.key, err)
		}
		return nil
	})
}
