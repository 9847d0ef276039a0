package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/logging"
	"communityhub/internal/server/config"
	"communityhub/internal/server/models"
)

type fakeResourceService struct {
	filter models.ResourceFilter
	items  []models.Resource
}

func (f *fakeResourceService) Create(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error) {
	return r, nil
}

func (f *fakeResourceService) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, error) {
	f.filter = filter
	return f.items, nil
}

func (f *fakeResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	return &models.Resource{ID: id}, nil
}

func (f *fakeResourceService) Update(ctx context.Context, userID string, r *models.Resource) (*models.Resource, error) {
	return r, nil
}

func (f *fakeResourceService) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func newResourceTestServer(t *testing.T, resources ResourceService) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewServer(cfg, logger, &fakeUserService{}, resources, nil, nil)
}

func TestListResources_PassesFilterQuery(t *testing.T) {
	fake := &fakeResourceService{}
	srv := newResourceTestServer(t, fake)

	req := httptest.NewRequest("GET",
		"/api/resources?category=food&title=pantry&tags=free&tags=weekend&sortBy=oldest", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ResourceFilter{
		Category: "food",
		Title:    "pantry",
		Tags:     []string{"free", "weekend"},
		SortBy:   "oldest",
	}, fake.filter)
}

func TestListResources_EmptyListIsAnArray(t *testing.T) {
	srv := newResourceTestServer(t, &fakeResourceService{})

	req := httptest.NewRequest("GET", "/api/resources", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
