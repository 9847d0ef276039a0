package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"communityhub/internal/client/models"
)

type authResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (c *Client) authCall(ctx context.Context, path string, reqBody any) (*models.Session, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &RequestError{Kind: KindRequestSetupFailed, Err: err}
	}

	payload, err := c.send(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return nil, err
	}

	var resp authResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &RequestError{Kind: KindRequestSetupFailed, Err: fmt.Errorf("decoding auth response: %w", err)}
	}

	c.mu.Lock()
	c.setTokensLocked(resp.Token, c.refreshToken)
	refreshToken := c.refreshToken
	c.mu.Unlock()

	return &models.Session{
		UserID:       resp.UserID,
		Name:         resp.Name,
		Email:        resp.Email,
		AccessToken:  resp.Token,
		RefreshToken: refreshToken,
	}, nil
}

// Register creates an account and establishes a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	return c.authCall(ctx, "/api/users/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
}

// Login establishes a session for an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return c.authCall(ctx, "/api/users/login", map[string]string{
		"email": email, "password": password,
	})
}

// Logout revokes the current session on the server and drops the local
// token pair. The local pair is dropped even when the server is unreachable.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPost, "/api/users/logout", nil, false)

	c.mu.Lock()
	c.setTokensLocked("", "")
	c.mu.Unlock()

	return err
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	payload, err := c.Do(ctx, http.MethodGet, "/api/users/profile", nil)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	if err := json.Unmarshal(payload, user); err != nil {
		return nil, &RequestError{Kind: KindRequestSetupFailed, Err: fmt.Errorf("decoding profile: %w", err)}
	}
	return user, nil
}
