package rest

import (
	"errors"
	"net/http"

	"communityhub/internal/common"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	user, pair, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.logger.Error(r.Context(), "register failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	noStore(w)
	s.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusCreated, authResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  pair.AccessToken,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	noStore(w)
	s.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, authResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  pair.AccessToken,
	})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "No refresh token")
		return
	}

	pair, err := s.users.Refresh(r.Context(), token)
	if err != nil {
		s.clearRefreshCookie(w)
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			writeMessage(w, http.StatusUnauthorized, "Refresh token expired")
		case errors.Is(err, common.ErrTokenRevoked):
			writeMessage(w, http.StatusUnauthorized, "Refresh token revoked")
		case errors.Is(err, common.ErrInvalidToken):
			writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			s.logger.Error(r.Context(), "refresh failed", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	noStore(w)
	s.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, map[string]string{"token": pair.AccessToken})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token != "" {
		if err := s.users.Logout(r.Context(), token); err != nil {
			// Logout never fails from the client's perspective.
			s.logger.Warn(r.Context(), "logout cleanup failed", "err", err)
		}
	}
	s.clearRefreshCookie(w)
	writeMessage(w, http.StatusOK, "Logged out")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	noStore(w)
	writeJSON(w, http.StatusOK, user)
}
