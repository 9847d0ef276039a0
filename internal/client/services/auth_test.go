package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityhub/internal/client/api"
	"communityhub/internal/client/models"
	"communityhub/internal/client/repositories/session"
	"communityhub/internal/common"
	"communityhub/internal/logging"

	_ "modernc.org/sqlite"
)

func setupSessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  data BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

var sessionSeed = models.Session{
	UserID: "u1", Name: "Ada", Email: "a@x.com",
	AccessToken: "access-1", RefreshToken: "refresh-1",
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLogin_PersistsSessionForNextRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-1"})
		_ = json.NewEncoder(w).Encode(map[string]string{
			"userId": "u1", "name": "Ada", "email": "a@x.com", "token": "access-1",
		})
	}))
	defer srv.Close()

	db := setupSessionDB(t)
	sessions := session.NewSQLiteRepository(db)
	svc := NewAuthService(api.NewClient(srv.URL), sessions, discardLogger())
	ctx := context.Background()

	sess, err := svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)

	// A fresh service over the same database resumes the session.
	svc2 := NewAuthService(api.NewClient(srv.URL), sessions, discardLogger())
	restored, err := svc2.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", restored.AccessToken)
	assert.Equal(t, "refresh-1", restored.RefreshToken)
	assert.True(t, svc2.LoggedIn(ctx))
}

func TestSilentRefresh_UpdatesPersistedTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "refresh-2"})
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "access-2"})
	})
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Access token expired","tokenExpired":true}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": "u1", "name": "Ada"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	db := setupSessionDB(t)
	sessions := session.NewSQLiteRepository(db)
	apiClient := api.NewClient(srv.URL)
	svc := NewAuthService(apiClient, sessions, discardLogger())
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, &sessionSeed))
	_, err := svc.Restore(ctx)
	require.NoError(t, err)

	_, err = svc.Profile(ctx)
	require.NoError(t, err)

	stored, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", stored.AccessToken)
	assert.Equal(t, "refresh-2", stored.RefreshToken)
}

func TestLogout_WorksOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable

	db := setupSessionDB(t)
	sessions := session.NewSQLiteRepository(db)
	svc := NewAuthService(api.NewClient(srv.URL), sessions, discardLogger())
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, &sessionSeed))

	require.NoError(t, svc.Logout(ctx))

	_, err := sessions.Load(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.False(t, svc.LoggedIn(ctx))
}
