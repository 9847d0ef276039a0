// Package api implements the HTTP client for the backend REST API: bearer
// token attachment, refresh cookie handling, a single silent refresh-and-retry
// when the access token expires, and failure classification for the offline
// layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const refreshCookieName = "refreshToken"

// TokensUpdatedFunc is called after every token change so the caller can
// persist the new pair.
type TokensUpdatedFunc func(accessToken, refreshToken string)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	onTokensUpdated TokensUpdatedFunc
}

// NewClient returns a Client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTokens seeds the client with a previously persisted token pair.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// OnTokensUpdated registers a callback invoked whenever the token pair
// changes (login, register, silent refresh, logout).
func (c *Client) OnTokensUpdated(fn TokensUpdatedFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTokensUpdated = fn
}

func (c *Client) setTokensLocked(accessToken, refreshToken string) {
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	if c.onTokensUpdated != nil {
		c.onTokensUpdated(accessToken, refreshToken)
	}
}

func (c *Client) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// Do sends one API request and returns the raw response payload.
// On a 401 caused by an expired access token it refreshes the token pair and
// retries the request once, invisibly to the caller.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	payload, err := c.send(ctx, method, path, body, true)
	if err == nil {
		return payload, nil
	}

	re, ok := err.(*RequestError)
	if !ok || !re.TokenExpired {
		return nil, err
	}

	if refreshErr := c.refresh(ctx); refreshErr != nil {
		return nil, refreshErr
	}
	return c.send(ctx, method, path, body, true)
}

// send performs a single request without the retry logic.
func (c *Client) send(ctx context.Context, method, path string, body []byte, bearer bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &RequestError{Kind: KindRequestSetupFailed, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	accessToken, refreshToken := c.tokens()
	if bearer && accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: refreshToken})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Kind: KindNoResponse, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Kind: KindNoResponse, Err: err}
	}

	c.captureRefreshCookie(resp)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}

	return nil, newServerError(resp.StatusCode, payload)
}

// captureRefreshCookie stores the rotated refresh token when the server sets
// one.
func (c *Client) captureRefreshCookie(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != refreshCookieName {
			continue
		}
		c.mu.Lock()
		if cookie.MaxAge < 0 || cookie.Value == "" {
			c.refreshToken = ""
		} else {
			c.refreshToken = cookie.Value
		}
		c.mu.Unlock()
	}
}

// newServerError extracts the server's error message from a non-2xx payload.
// Handlers answer either {"error": ...} or {"message": ...}; expired access
// tokens additionally carry "tokenExpired": true.
func newServerError(status int, payload []byte) *RequestError {
	var body struct {
		Error        string `json:"error"`
		Message      string `json:"message"`
		TokenExpired bool   `json:"tokenExpired"`
	}
	_ = json.Unmarshal(payload, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}

	return &RequestError{
		Kind:         KindServerResponded,
		StatusCode:   status,
		Message:      msg,
		TokenExpired: body.TokenExpired,
	}
}

// refresh exchanges the refresh cookie for a new token pair.
func (c *Client) refresh(ctx context.Context) error {
	payload, err := c.send(ctx, http.MethodPost, "/api/users/refresh-token", nil, false)
	if err != nil {
		return err
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return &RequestError{Kind: KindRequestSetupFailed, Err: fmt.Errorf("decoding refresh response: %w", err)}
	}

	c.mu.Lock()
	c.setTokensLocked(body.Token, c.refreshToken)
	c.mu.Unlock()
	return nil
}

// Ping probes server reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, "/health", nil, false)
	return err
}
