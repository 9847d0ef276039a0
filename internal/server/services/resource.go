package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communityhub/internal/common"
	"communityhub/internal/server/models"
	"communityhub/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

// ResourceService implements CRUD over community resources with ownership
// checks on mutations.
type ResourceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewResourceService constructs a ResourceService.
func NewResourceService(db *sql.DB, m repomanager.RepositoryManager) *ResourceService {
	return &ResourceService{db: db, repomanager: m}
}

// Create stores a new resource owned by userID.
func (s *ResourceService) Create(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error) {
	r.ID = uuid.NewString()
	r.UserID = userID

	repo := s.repomanager.Resources(s.db)
	created, err := repo.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("error creating resource: %w", err)
	}
	return created, nil
}

// List returns resources matching the filter.
func (s *ResourceService) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	repo := s.repomanager.Resources(s.db)
	return repo.GetAll(ctx, filter)
}

// Get returns one resource by id.
func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	repo := s.repomanager.Resources(s.db)
	return repo.GetByID(ctx, id)
}

// Update rewrites a resource. Only the owner may update; anyone else gets
// common.ErrorForbidden.
func (s *ResourceService) Update(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error) {
	repo := s.repomanager.Resources(s.db)

	existing, err := repo.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, common.ErrorForbidden
	}

	r.UserID = existing.UserID
	r.CreatedAt = existing.CreatedAt
	if err := repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a resource owned by userID.
func (s *ResourceService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Resources(s.db)

	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return common.ErrorForbidden
	}
	return repo.Delete(ctx, id)
}
