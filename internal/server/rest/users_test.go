package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"communityhub/internal/common"
	"communityhub/internal/logging"
	"communityhub/internal/server/config"
	"communityhub/internal/server/models"
	"communityhub/internal/server/services"
)

// fakeUserService scripts the outcomes the transport must translate into
// HTTP shapes.
type fakeUserService struct {
	registerErr error
	loginErr    error
	refreshErr  error
	authErr     error

	pair   *services.TokenPair
	user   *models.User
	userID string

	loggedOut []string
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password string) (*models.User, *services.TokenPair, error) {
	if f.registerErr != nil {
		return nil, nil, f.registerErr
	}
	return f.user, f.pair, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.user, f.pair, nil
}

func (f *fakeUserService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.pair, nil
}

func (f *fakeUserService) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

func (f *fakeUserService) Authenticate(accessToken string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.userID, nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if f.user == nil {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func newTestServer(t *testing.T, users UserService) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewServer(cfg, logger, users, nil, nil, nil)
}

func refreshCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_SetsRefreshCookieAndReturnsToken(t *testing.T) {
	fake := &fakeUserService{
		user: &models.User{ID: "u1", Name: "Ada", Email: "a@x.com"},
		pair: &services.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"},
	}
	srv := newTestServer(t, fake)

	req := httptest.NewRequest("POST", "/api/users/login",
		strings.NewReader(`{"email":"a@x.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "access-1", body["token"])
	require.Equal(t, "u1", body["userId"])

	c := refreshCookie(t, rec.Result())
	require.NotNil(t, c, "refresh cookie must be set")
	require.Equal(t, "refresh-1", c.Value)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, c.SameSite)
	require.Equal(t, int((7*24*time.Hour)/time.Second), c.MaxAge)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{loginErr: common.ErrInvalidCredentials})

	req := httptest.NewRequest("POST", "/api/users/login",
		strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Invalid email or password", body["error"])
}

func TestRegister_Duplicate(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{registerErr: common.ErrorAlreadyExists})

	req := httptest.NewRequest("POST", "/api/users/register",
		strings.NewReader(`{"name":"Ada","email":"a@x.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "User already exists")
}

func TestRefreshToken_RotatesAndSetsNewCookie(t *testing.T) {
	fake := &fakeUserService{
		pair: &services.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"},
	}
	srv := newTestServer(t, fake)

	req := httptest.NewRequest("POST", "/api/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh-1"})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "access-2", body["token"])

	c := refreshCookie(t, rec.Result())
	require.NotNil(t, c)
	require.Equal(t, "refresh-2", c.Value, "cookie must carry the rotated token")
}

func TestRefreshToken_DistinctFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"expired", common.ErrRefreshTokenExpired, "Refresh token expired"},
		{"revoked", common.ErrTokenRevoked, "Refresh token revoked"},
		{"invalid", common.ErrInvalidToken, "Invalid refresh token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeUserService{refreshErr: tc.err})

			req := httptest.NewRequest("POST", "/api/users/refresh-token", nil)
			req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "stale"})
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestRefreshToken_MissingCookie(t *testing.T) {
	srv := newTestServer(t, &fakeUserService{})

	req := httptest.NewRequest("POST", "/api/users/refresh-token", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_AlwaysSucceedsAndClearsCookie(t *testing.T) {
	fake := &fakeUserService{}
	srv := newTestServer(t, fake)

	// Even with no cookie at all, logout answers 200.
	req := httptest.NewRequest("POST", "/api/users/logout", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("POST", "/api/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh-1"})
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"refresh-1"}, fake.loggedOut)

	c := refreshCookie(t, rec.Result())
	require.NotNil(t, c)
	require.Empty(t, c.Value)
	require.Negative(t, c.MaxAge, "cookie must be expired")
}
