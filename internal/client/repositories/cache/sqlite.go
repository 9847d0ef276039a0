package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"communityhub/internal/common"
	"communityhub/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, partition, key string, payload []byte) error {
	query := `INSERT INTO cache (partition, key, payload, cached_at)
			values (?, ?, ?, ?)
			ON CONFLICT(partition, key) DO UPDATE SET payload = excluded.payload,
				cached_at = excluded.cached_at
	`
	_, err := r.db.ExecContext(ctx, query, partition, key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, partition, key string) ([]byte, time.Time, error) {
	query := `select payload, cached_at from cache where partition=? and key=?`
	row := r.db.QueryRowContext(ctx, query, partition, key)

	var payload []byte
	var cachedAt time.Time
	if err := row.Scan(&payload, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, common.ErrorNotFound
		}
		return nil, time.Time{}, fmt.Errorf("query row scan failed: %w", err)
	}
	return payload, cachedAt, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, partition, key string) error {
	query := `delete from cache where partition=? and key=?`
	if _, err := r.db.ExecContext(ctx, query, partition, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeletePartition(ctx context.Context, partition string) error {
	query := `delete from cache where partition=?`
	if _, err := r.db.ExecContext(ctx, query, partition); err != nil {
		return fmt.Errorf("failed to clear cache partition: %w", err)
	}
	return nil
}
