// Package discussions declares the server-side repository contract for
// discussion threads and their comments.
package discussions

import (
	"context"

	"communityhub/internal/server/models"
)

// Repository defines persistence operations for discussions and comments.
type Repository interface {
	Create(ctx context.Context, d *models.Discussion) (*models.Discussion, error)

	// GetAll lists discussions (without comments), optionally filtered by
	// category, newest first.
	GetAll(ctx context.Context, category string) ([]models.Discussion, error)

	// GetByID returns one discussion with its comments, oldest comment first,
	// or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Discussion, error)

	Update(ctx context.Context, d *models.Discussion) error

	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error)

	// GetComment returns a single comment or common.ErrorNotFound.
	GetComment(ctx context.Context, discussionID, commentID string) (*models.Comment, error)

	DeleteComment(ctx context.Context, discussionID, commentID string) error
}
