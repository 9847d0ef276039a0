// Package services exposes the client's use cases to the CLI, combining the
// API client, the offline layer, and the local repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"communityhub/internal/client/api"
	"communityhub/internal/client/models"
	"communityhub/internal/client/repositories/session"
	"communityhub/internal/common"
	"communityhub/internal/logging"
)

// AuthService manages the authenticated session: establishing it, restoring
// it between CLI runs, and keeping the persisted token pair current as the
// API client rotates it.
type AuthService struct {
	api      *api.Client
	sessions session.Repository
	logger   logging.Logger
}

func NewAuthService(apiClient *api.Client, sessions session.Repository, logger logging.Logger) *AuthService {
	s := &AuthService{api: apiClient, sessions: sessions, logger: logger}

	// Silent refreshes rotate the pair mid-request; persist every change so
	// the next CLI run resumes with valid tokens.
	apiClient.OnTokensUpdated(func(accessToken, refreshToken string) {
		ctx := context.Background()
		stored, err := s.sessions.Load(ctx)
		if err != nil {
			return
		}
		stored.AccessToken = accessToken
		stored.RefreshToken = refreshToken
		if err := s.sessions.Save(ctx, stored); err != nil {
			s.logger.Error(ctx, "failed to persist rotated tokens", "error", err)
		}
	})

	return s
}

// Restore loads the persisted session, if any, and seeds the API client with
// its token pair. Returns common.ErrorNotFound when no one is logged in.
func (s *AuthService) Restore(ctx context.Context) (*models.Session, error) {
	stored, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.api.SetTokens(stored.AccessToken, stored.RefreshToken)
	return stored, nil
}

// Register creates an account and persists the new session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	sess, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return sess, nil
}

// Login authenticates and persists the new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return sess, nil
}

// Logout drops the local session and revokes it on the server. The local
// session is dropped even when the server is unreachable, so logging out
// always works offline.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	err := s.api.Logout(ctx)
	if err != nil && api.IsNoResponse(err) {
		s.logger.Info(ctx, "server unreachable, session revoked locally only")
		return nil
	}
	return err
}

// Profile fetches the authenticated user's profile.
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	return s.api.Profile(ctx)
}

// LoggedIn reports whether a session is persisted.
func (s *AuthService) LoggedIn(ctx context.Context) bool {
	_, err := s.sessions.Load(ctx)
	return !errors.Is(err, common.ErrorNotFound) && err == nil
}
