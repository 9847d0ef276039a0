// Package resources declares the server-side repository contract for
// community resource listings.
package resources

import (
	"context"

	"communityhub/internal/server/models"
)

// Repository defines persistence operations for resources.
type Repository interface {
	Create(ctx context.Context, r *models.Resource) (*models.Resource, error)

	// GetAll lists resources matching the filter, newest first unless the
	// filter orders otherwise.
	GetAll(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error)

	// GetByID returns a single resource or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Resource, error)

	Update(ctx context.Context, r *models.Resource) error

	// Delete removes a resource, returning common.ErrorNotFound when the id
	// is unknown.
	Delete(ctx context.Context, id string) error
}
