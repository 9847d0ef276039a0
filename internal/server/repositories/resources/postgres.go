package resources

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

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

const columns = `id, title, description, category, url, image_url,
	business_name, business_address, phone_number, tags, user_id, created_at`

func scanResource(row interface{ Scan(...any) error }, r *models.Resource) error {
	var tags []byte
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Category, &r.URL,
		&r.ImageURL, &r.BusinessName, &r.BusinessAddress, &r.PhoneNumber,
		&tags, &r.UserID, &r.CreatedAt)
	if err != nil {
		return err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &r.Tags); err != nil {
			return fmt.Errorf("decoding tags: %w", err)
		}
	}
	return nil
}

// encodeTags serializes tags for the jsonb column, never as SQL NULL.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

// Create inserts a new resource and returns it with CreatedAt populated.
func (p *PostgresRepository) Create(ctx context.Context, r *models.Resource) (*models.Resource, error) {
	query := `
		INSERT INTO resources (id, title, description, category, url, image_url,
			business_name, business_address, phone_number, tags, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	tags, err := encodeTags(r.Tags)
	if err != nil {
		return nil, err
	}
	err = p.db.QueryRowContext(ctx, query,
		r.ID, r.Title, r.Description, r.Category, r.URL, r.ImageURL,
		r.BusinessName, r.BusinessAddress, r.PhoneNumber, tags, r.UserID).Scan(&r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

// GetAll lists resources matching the filter. Category and title match as
// case-insensitive substrings; tags match when the resource carries any of
// the requested tags.
func (p *PostgresRepository) GetAll(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	query := `SELECT ` + columns + ` FROM resources`
	var conds []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, `category ILIKE `+next("%"+filter.Category+"%"))
	}
	if filter.Title != "" {
		conds = append(conds, `title ILIKE `+next("%"+filter.Title+"%"))
	}
	if len(filter.Tags) > 0 {
		var tagConds []string
		for _, tag := range filter.Tags {
			tagConds = append(tagConds, `tags ? `+next(tag))
		}
		conds = append(conds, `(`+strings.Join(tagConds, ` OR `)+`)`)
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	if filter.SortBy == "oldest" {
		query += ` ORDER BY created_at ASC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Resource
	for rows.Next() {
		var item models.Resource
		if err := scanResource(rows, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single resource.
func (p *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query := `SELECT ` + columns + ` FROM resources WHERE id = $1`

	r := &models.Resource{}
	if err := scanResource(p.db.QueryRowContext(ctx, query, id), r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

// Update rewrites the mutable fields of a resource.
func (p *PostgresRepository) Update(ctx context.Context, r *models.Resource) error {
	query := `
		UPDATE resources
		SET title = $2, description = $3, category = $4, url = $5,
			image_url = $6, business_name = $7, business_address = $8,
			phone_number = $9, tags = $10
		WHERE id = $1
	`
	tags, err := encodeTags(r.Tags)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, query,
		r.ID, r.Title, r.Description, r.Category, r.URL, r.ImageURL,
		r.BusinessName, r.BusinessAddress, r.PhoneNumber, tags)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a resource by id.
func (p *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
