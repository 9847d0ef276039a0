package discussions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communityhub/internal/common"
	"communityhub/internal/dbx"
	"communityhub/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new discussion and returns it with timestamps populated.
func (p *PostgresRepository) Create(ctx context.Context, d *models.Discussion) (*models.Discussion, error) {
	query := `
		INSERT INTO discussions (id, title, content, category, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := p.db.QueryRowContext(ctx, query,
		d.ID, d.Title, d.Content, d.Category, d.UserID).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// GetAll lists discussions newest first, comments omitted.
func (p *PostgresRepository) GetAll(ctx context.Context, category string) ([]models.Discussion, error) {
	query := `SELECT id, title, content, category, user_id, created_at, updated_at FROM discussions`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Discussion
	for rows.Next() {
		var d models.Discussion
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.Category, &d.UserID,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one discussion with its comments attached.
func (p *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Discussion, error) {
	query := `
		SELECT id, title, content, category, user_id, created_at, updated_at
		FROM discussions
		WHERE id = $1
	`
	d := &models.Discussion{}
	err := p.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Title, &d.Content,
		&d.Category, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	comments, err := p.getComments(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Comments = comments
	return d, nil
}

func (p *PostgresRepository) getComments(ctx context.Context, discussionID string) ([]models.Comment, error) {
	query := `
		SELECT id, discussion_id, user_id, content, created_at
		FROM comments
		WHERE discussion_id = $1
		ORDER BY created_at
	`
	rows, err := p.db.QueryContext(ctx, query, discussionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.DiscussionID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// Update rewrites the mutable fields of a discussion and bumps updated_at.
func (p *PostgresRepository) Update(ctx context.Context, d *models.Discussion) error {
	query := `
		UPDATE discussions
		SET title = $2, content = $3, category = $4, updated_at = now()
		WHERE id = $1
	`
	res, err := p.db.ExecContext(ctx, query, d.ID, d.Title, d.Content, d.Category)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a discussion; its comments cascade.
func (p *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// AddComment inserts a comment into a discussion.
func (p *PostgresRepository) AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (id, discussion_id, user_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := p.db.QueryRowContext(ctx, query,
		c.ID, c.DiscussionID, c.UserID, c.Content).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// GetComment returns a single comment of a discussion.
func (p *PostgresRepository) GetComment(ctx context.Context, discussionID, commentID string) (*models.Comment, error) {
	query := `
		SELECT id, discussion_id, user_id, content, created_at
		FROM comments
		WHERE id = $1 AND discussion_id = $2
	`
	c := &models.Comment{}
	err := p.db.QueryRowContext(ctx, query, commentID, discussionID).Scan(
		&c.ID, &c.DiscussionID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// DeleteComment removes a comment from a discussion.
func (p *PostgresRepository) DeleteComment(ctx context.Context, discussionID, commentID string) error {
	query := `DELETE FROM comments WHERE id = $1 AND discussion_id = $2`
	res, err := p.db.ExecContext(ctx, query, commentID, discussionID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
