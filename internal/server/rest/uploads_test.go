package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/logging"
	"communityhub/internal/server/config"
)

type fakeAttachmentService struct {
	putKey string
	putURL string
	getURL string

	getKey string
}

func (f *fakeAttachmentService) GetPresignedPutURL(ctx context.Context, userID string) (string, string, error) {
	return f.putKey, f.putURL, nil
}

func (f *fakeAttachmentService) GetPresignedGetURL(ctx context.Context, key string) (string, error) {
	f.getKey = key
	return f.getURL, nil
}

func newUploadTestServer(t *testing.T, attachments AttachmentService) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	users := &fakeUserService{userID: "u1"}
	return NewServer(cfg, logger, users, nil, nil, attachments)
}

func TestPresignUpload_ReturnsKeyAndURL(t *testing.T) {
	fake := &fakeAttachmentService{putKey: "u1/abc.bin", putURL: "https://s3.example/put"}
	srv := newUploadTestServer(t, fake)

	req := httptest.NewRequest("POST", "/api/uploads/presign", nil)
	req.Header.Set("Authorization", "Bearer access-1")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1/abc.bin", body["key"])
	assert.Equal(t, "https://s3.example/put", body["url"])
}

func TestPresignDownload_ReturnsURLForKey(t *testing.T) {
	fake := &fakeAttachmentService{getURL: "https://s3.example/get"}
	srv := newUploadTestServer(t, fake)

	req := httptest.NewRequest("GET", "/api/uploads/presign-download?key=u1%2Fabc.bin", nil)
	req.Header.Set("Authorization", "Bearer access-1")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://s3.example/get", body["url"])
	assert.Equal(t, "u1/abc.bin", fake.getKey)
}

func TestPresignDownload_MissingKey(t *testing.T) {
	srv := newUploadTestServer(t, &fakeAttachmentService{})

	req := httptest.NewRequest("GET", "/api/uploads/presign-download", nil)
	req.Header.Set("Authorization", "Bearer access-1")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
