package services

import (
	"context"
	"database/sql"
	"fmt"

	"communityhub/internal/common"
	"communityhub/internal/server/models"
	"communityhub/internal/server/repositories/repomanager"

	"github.com/google/uuid"
)

// DiscussionService implements CRUD over discussion threads and comments.
type DiscussionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDiscussionService constructs a DiscussionService.
func NewDiscussionService(db *sql.DB, m repomanager.RepositoryManager) *DiscussionService {
	return &DiscussionService{db: db, repomanager: m}
}

// Create stores a new discussion owned by userID.
func (s *DiscussionService) Create(ctx context.Context, userID string, d *models.Discussion) (*models.Discussion, error) {
	d.ID = uuid.NewString()
	d.UserID = userID
	d.Comments = []models.Comment{}

	repo := s.repomanager.Discussions(s.db)
	created, err := repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("error creating discussion: %w", err)
	}
	return created, nil
}

// List returns discussions, optionally filtered by category.
func (s *DiscussionService) List(ctx context.Context, category string) ([]models.Discussion, error) {
	repo := s.repomanager.Discussions(s.db)
	return repo.GetAll(ctx, category)
}

// Get returns one discussion with comments.
func (s *DiscussionService) Get(ctx context.Context, id string) (*models.Discussion, error) {
	repo := s.repomanager.Discussions(s.db)
	return repo.GetByID(ctx, id)
}

// Update rewrites a discussion owned by userID.
func (s *DiscussionService) Update(ctx context.Context, userID string, d *models.Discussion) (*models.Discussion, error) {
	repo := s.repomanager.Discussions(s.db)

	existing, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, common.ErrorForbidden
	}

	if err := repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, d.ID)
}

// Delete removes a discussion owned by userID together with its comments.
func (s *DiscussionService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Discussions(s.db)

	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return common.ErrorForbidden
	}
	return repo.Delete(ctx, id)
}

// AddComment appends a comment by userID to the discussion and returns the
// updated thread.
func (s *DiscussionService) AddComment(ctx context.Context, userID, discussionID, content string) (*models.Discussion, error) {
	repo := s.repomanager.Discussions(s.db)

	if _, err := repo.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		UserID:       userID,
		Content:      content,
	}
	if _, err := repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, discussionID)
}

// DeleteComment removes a comment. The comment's author and the discussion's
// owner may both delete it.
func (s *DiscussionService) DeleteComment(ctx context.Context, userID, discussionID, commentID string) error {
	repo := s.repomanager.Discussions(s.db)

	discussion, err := repo.GetByID(ctx, discussionID)
	if err != nil {
		return err
	}
	comment, err := repo.GetComment(ctx, discussionID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && discussion.UserID != userID {
		return common.ErrorForbidden
	}
	return repo.DeleteComment(ctx, discussionID, commentID)
}
