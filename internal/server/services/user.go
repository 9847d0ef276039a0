// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/rotating the
// access/refresh token pair backed by the persisted allow-list.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"communityhub/internal/common"
	"communityhub/internal/dbx"
	"communityhub/internal/server/auth"
	"communityhub/internal/server/config"
	"communityhub/internal/server/models"
	"communityhub/internal/server/repositories/repomanager"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// dummyHash is a bcrypt hash of an unguessable throwaway value. Login runs a
// compare against it when the account does not exist, so the response time
// does not reveal whether the email was registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService provides authentication-related operations:
//   - Register: create users and mint a first token pair
//   - Login: verify credentials and mint tokens
//   - Refresh: rotate refresh tokens and mint new access tokens
//   - Logout: revoke a single session's refresh token
//   - Authenticate: resolve an access token to its user id
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: m, cfg: cfg}
}

// IssueAccessToken mints a short-lived access token for userID. Pure; no
// persistence.
func (s *UserService) IssueAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, []byte(s.cfg.AccessTokenSecret), s.cfg.AccessTokenValidityDuration)
}

// IssueRefreshToken mints a long-lived refresh token for userID, signed with
// the refresh secret. The caller is responsible for persisting it.
func (s *UserService) IssueRefreshToken(userID string) (string, error) {
	return auth.GenerateToken(userID, []byte(s.cfg.RefreshTokenSecret), s.cfg.RefreshTokenValidityDuration)
}

// VerifyRefreshToken checks a refresh token's signature and expiry without
// touching the allow-list.
func (s *UserService) VerifyRefreshToken(token string) auth.RefreshVerification {
	return auth.VerifyRefreshToken(token, []byte(s.cfg.RefreshTokenSecret))
}

// Register creates a new user and returns it with a fresh token pair. The
// refresh token is appended to the user's allow-list. A duplicate email
// yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, u.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login verifies the credentials and, on success, returns the user and a new
// TokenPair. The refresh token is appended to the allow-list without clearing
// previous entries, so each device keeps its own session. A missing account
// and a wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same bcrypt work as the success path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token, rotates it, and returns a fresh
// TokenPair. The membership check and the removal of the old token are one
// conditional statement inside a transaction, so a stolen copy and the
// legitimate one can never both rotate successfully. Outcomes:
//   - common.ErrInvalidToken: bad signature or malformed token
//   - common.ErrRefreshTokenExpired: well-formed but past its expiry
//   - common.ErrTokenRevoked: no longer on the allow-list (rotated or logged out)
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	verification := s.VerifyRefreshToken(refreshToken)
	if !verification.Valid {
		return nil, common.ErrInvalidToken
	}
	if verification.Expired {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)

		userID, taken, err := repoTx.TakeForRotation(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error rotating refresh token: %w", err)
		}
		if !taken {
			return common.ErrTokenRevoked
		}

		var genErr error
		pair, genErr = s.generateTokenPair(ctx, userID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the session owning refreshToken by deleting its allow-list
// entry. Idempotent: an unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	repo := s.repomanager.RefreshTokens(s.db)
	return repo.Delete(ctx, refreshToken)
}

// Authenticate resolves a bearer access token to the owning user id.
// Expired tokens return common.ErrTokenExpired so the transport layer can
// signal the client to refresh; all other failures are common.ErrInvalidToken.
func (s *UserService) Authenticate(accessToken string) (string, error) {
	return auth.GetUserIDFromToken(accessToken, []byte(s.cfg.AccessTokenSecret))
}

// GetProfile returns the account for userID without the password hash.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.cfg.RefreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
