package outbox

import (
	"context"
	"fmt"
	"time"

	"communityhub/internal/client/models"
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

func (r *SQLiteRepository) Enqueue(ctx context.Context, queue, method, path string, body []byte) error {
	query := `insert into outbox (queue, method, path, body, created_at) values (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, queue, method, path, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to enqueue write: %w", err)
	}
	return nil
}

// ListPending returns queue entries ordered by id, which follows insertion
// order for an AUTOINCREMENT key.
func (r *SQLiteRepository) ListPending(ctx context.Context, queue string) ([]models.OutboxEntry, error) {
	query := `select id, queue, method, path, body, created_at from outbox where queue=? order by id`
	rows, err := r.db.QueryContext(ctx, query, queue)
	if err != nil {
		return nil, fmt.Errorf("failed to select outbox entries: %w", err)
	}
	defer rows.Close()

	var result []models.OutboxEntry
	for rows.Next() {
		var item models.OutboxEntry
		if err := rows.Scan(&item.ID, &item.Queue, &item.Method, &item.Path, &item.Body, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `delete from outbox where id=?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete outbox entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `delete from outbox where created_at < ?`
	res, err := r.db.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge outbox: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra, nil
}
