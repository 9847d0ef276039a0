package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"communityhub/internal/client/models"
	"communityhub/internal/client/offline"
	"communityhub/internal/client/repositories/cache"
	"communityhub/internal/client/repositories/outbox"
)

// DiscussionService reads and mutates discussion threads through the offline
// layer.
type DiscussionService struct {
	syncer *offline.Syncer
}

func NewDiscussionService(syncer *offline.Syncer) *DiscussionService {
	return &DiscussionService{syncer: syncer}
}

func (s *DiscussionService) List(ctx context.Context, category string) (*ListResult[models.Discussion], error) {
	path := "/api/discussions"
	key := "list"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
		key += ":" + category
	}

	res, err := s.syncer.GetList(ctx, cache.PartitionDiscussions, key, path, elementID)
	if err != nil {
		return nil, err
	}

	var items []models.Discussion
	if err := json.Unmarshal(res.Payload, &items); err != nil {
		return nil, fmt.Errorf("decoding discussions: %w", err)
	}
	return &ListResult[models.Discussion]{Items: items, FromCache: res.FromCache}, nil
}

func (s *DiscussionService) Get(ctx context.Context, id string) (*ItemResult[models.Discussion], error) {
	res, err := s.syncer.Get(ctx, cache.PartitionDiscussions, id, "/api/discussions/"+id)
	if err != nil {
		return nil, err
	}

	item := &models.Discussion{}
	if err := json.Unmarshal(res.Payload, item); err != nil {
		return nil, fmt.Errorf("decoding discussion: %w", err)
	}
	return &ItemResult[models.Discussion]{Item: item, FromCache: res.FromCache}, nil
}

func (s *DiscussionService) Create(ctx context.Context, d *models.Discussion) (*WriteOutcome, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding discussion: %w", err)
	}

	res, err := s.syncer.Write(ctx, outbox.QueueDiscussions, "POST", "/api/discussions", body)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *DiscussionService) Update(ctx context.Context, id string, d *models.Discussion) (*WriteOutcome, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding discussion: %w", err)
	}

	res, err := s.syncer.Write(ctx, outbox.QueueDiscussions, "PUT", "/api/discussions/"+id, body)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *DiscussionService) Delete(ctx context.Context, id string) (*WriteOutcome, error) {
	res, err := s.syncer.Write(ctx, outbox.QueueDiscussions, "DELETE", "/api/discussions/"+id, nil)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *DiscussionService) AddComment(ctx context.Context, discussionID, content string) (*WriteOutcome, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("encoding comment: %w", err)
	}

	res, err := s.syncer.Write(ctx, outbox.QueueDiscussions, "POST",
		"/api/discussions/"+discussionID+"/comments", body)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *DiscussionService) DeleteComment(ctx context.Context, discussionID, commentID string) (*WriteOutcome, error) {
	res, err := s.syncer.Write(ctx, outbox.QueueDiscussions, "DELETE",
		"/api/discussions/"+discussionID+"/comments/"+commentID, nil)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}
