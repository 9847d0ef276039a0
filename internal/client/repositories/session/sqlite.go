// Package session stores the authenticated session between CLI invocations.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"communityhub/internal/client/models"
	"communityhub/internal/common"
	"communityhub/internal/dbx"
)

// Repository persists at most one session.
type Repository interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s *models.Session) error

	// Load returns the stored session, or common.ErrorNotFound when the
	// user has never logged in (or has logged out).
	Load(ctx context.Context) (*models.Session, error)

	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	query := `insert into session (id, data) values (1, ?)
			ON CONFLICT(id) DO UPDATE SET data = excluded.data`
	if _, err := r.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx, `select data from session where id=1`)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}

	s := &models.Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from session where id=1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
