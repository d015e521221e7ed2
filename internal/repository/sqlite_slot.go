package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studysync/internal/db"
)

type SQLiteSlotRepo struct {
	db db.DBTX
}

func NewSQLiteSlotRepo(conn db.DBTX) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: conn}
}

func (r *SQLiteSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *SQLiteSlotRepo) Put(ctx context.Context, key string, value []byte, at time.Time) error {
	query := `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, string(value), at.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteSlotRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}
	return nil
}
