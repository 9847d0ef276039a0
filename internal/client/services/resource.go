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

// ListResult carries a fetched collection and whether it was served from the
// local cache.
type ListResult[T any] struct {
	Items     []T
	FromCache bool
}

// ItemResult carries a single fetched item and its cache provenance.
type ItemResult[T any] struct {
	Item      *T
	FromCache bool
}

// WriteOutcome reports how a mutation was handled.
type WriteOutcome struct {
	// Queued is true when the server was unreachable and the write waits in
	// the outbox for replay.
	Queued bool
}

// elementID keys a list element by the server-assigned identifier, so list
// responses also populate the per-item cache.
func elementID(element []byte) (string, bool) {
	var probe struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(element, &probe); err != nil || probe.ID == "" {
		return "", false
	}
	return probe.ID, true
}

// ResourceService reads and mutates community resources through the offline
// layer.
type ResourceService struct {
	syncer *offline.Syncer
}

func NewResourceService(syncer *offline.Syncer) *ResourceService {
	return &ResourceService{syncer: syncer}
}

// ResourceQuery narrows a resource listing; zero values mean no filter.
type ResourceQuery struct {
	Category string
	Title    string
	Tags     []string
	SortBy   string
}

func (q ResourceQuery) encode() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	for _, tag := range q.Tags {
		v.Add("tags", tag)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	return v
}

func (s *ResourceService) List(ctx context.Context, q ResourceQuery) (*ListResult[models.Resource], error) {
	path := "/api/resources"
	key := "list"
	if params := q.encode().Encode(); params != "" {
		path += "?" + params
		key += ":" + params
	}

	res, err := s.syncer.GetList(ctx, cache.PartitionResources, key, path, elementID)
	if err != nil {
		return nil, err
	}

	var items []models.Resource
	if err := json.Unmarshal(res.Payload, &items); err != nil {
		return nil, fmt.Errorf("decoding resources: %w", err)
	}
	return &ListResult[models.Resource]{Items: items, FromCache: res.FromCache}, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*ItemResult[models.Resource], error) {
	res, err := s.syncer.Get(ctx, cache.PartitionResources, id, "/api/resources/"+id)
	if err != nil {
		return nil, err
	}

	item := &models.Resource{}
	if err := json.Unmarshal(res.Payload, item); err != nil {
		return nil, fmt.Errorf("decoding resource: %w", err)
	}
	return &ItemResult[models.Resource]{Item: item, FromCache: res.FromCache}, nil
}

func (s *ResourceService) Create(ctx context.Context, r *models.Resource) (*WriteOutcome, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}

	res, err := s.syncer.Write(ctx, outbox.QueueResources, "POST", "/api/resources", body)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *ResourceService) Update(ctx context.Context, id string, r *models.Resource) (*WriteOutcome, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}

	res, err := s.syncer.Write(ctx, outbox.QueueResources, "PUT", "/api/resources/"+id, body)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}

func (s *ResourceService) Delete(ctx context.Context, id string) (*WriteOutcome, error) {
	res, err := s.syncer.Write(ctx, outbox.QueueResources, "DELETE", "/api/resources/"+id, nil)
	if res == nil {
		return nil, err
	}
	return &WriteOutcome{Queued: res.Queued}, err
}
