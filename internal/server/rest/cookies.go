package rest

import (
	"net/http"
	"time"
)

// refreshCookieName is the cookie carrying the refresh token. It is HttpOnly
// and SameSite=Strict so scripts and cross-site requests never see it.
const refreshCookieName = "refreshToken"

// refreshCookiePath restricts the cookie to the endpoints that actually
// consume it.
const refreshCookiePath = "/api/users"

func (s *Server) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(s.cfg.RefreshTokenValidityDuration / time.Second),
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromRequest extracts the refresh token cookie, returning ""
// when absent.
func refreshTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
