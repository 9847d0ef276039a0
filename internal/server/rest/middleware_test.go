package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"communityhub/internal/common"
	"communityhub/internal/server/models"
)

func TestRequireAuth_ExpiredTokenSignalsRefresh(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{authErr: common.ErrTokenExpired})

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Message      string `json:"message"`
		TokenExpired bool   `json:"tokenExpired"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Access token expired", body.Message)
	require.True(t, body.TokenExpired, "client keys its silent refresh off this flag")
}

func TestRequireAuth_MissingAndInvalidTokens(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{authErr: common.ErrInvalidToken})

	// No Authorization header.
	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "tokenExpired")

	// Garbage bearer token.
	req = httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "tokenExpired")
}

func TestRequireAuth_ValidTokenReachesHandler(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{
		userID: "u1",
		user:   &models.User{ID: "u1", Name: "Ada", Email: "a@x.com"},
	})

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Ada", body["name"])
}
