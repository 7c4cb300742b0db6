// Package client implements the backend API client used by the session
// manager for login, logout and token refresh. Every response is unwrapped
// from the API's envelope and mapped onto the session layer's error taxonomy:
// transport faults become ErrNetworkFailure, rejected credentials become
// ErrInvalidCredentials, and a 401 on an authenticated call becomes
// ErrUnauthorized.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campaignwala/sessiongate"
)

const defaultTimeout = 15 * time.Second

// Response is the API envelope every endpoint answers with.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client talks to the Campaignwala backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New builds a Client against baseURL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ sessiongate.AuthClient = (*Client)(nil)

type loginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, creds sessiongate.Credentials) (sessiongate.LoginPayload, error) {
	body := map[string]string{
		"phone":    creds.Phone,
		"password": creds.Password,
	}

	resp, status, err := c.request(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return sessiongate.LoginPayload{}, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden || (status < 500 && !resp.Success) {
		return sessiongate.LoginPayload{}, fmt.Errorf("%w: %s", sessiongate.ErrInvalidCredentials, resp.Message)
	}
	if status >= 500 {
		return sessiongate.LoginPayload{}, fmt.Errorf("%w: status %d", sessiongate.ErrNetworkFailure, status)
	}

	var data loginResponse
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return sessiongate.LoginPayload{}, fmt.Errorf("%w: decoding login data: %v", sessiongate.ErrNetworkFailure, err)
	}

	var profile struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Role    string `json:"role"`
		Phone   string `json:"phone"`
	}
	_ = json.Unmarshal(data.User, &profile)

	userID := profile.MongoID
	if userID == "" {
		userID = profile.ID
	}

	role := sessiongate.ParseRole(profile.Role)

	return sessiongate.LoginPayload{
		UserID:  userID,
		Role:    role,
		Token:   data.Token,
		Phone:   profile.Phone,
		Profile: data.User,
	}, nil
}

// Logout invalidates the token server-side. A 401 here is treated as success:
// the session is already gone remotely.
func (c *Client) Logout(ctx context.Context, token string) error {
	resp, status, err := c.request(ctx, http.MethodPost, "/auth/logout", token, nil)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		return nil
	}
	if status >= 500 {
		return fmt.Errorf("%w: status %d", sessiongate.ErrNetworkFailure, status)
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", sessiongate.ErrNetworkFailure, resp.Message)
	}
	return nil
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	resp, status, err := c.request(ctx, http.MethodPost, "/auth/refresh", token, nil)
	if err != nil {
		return "", err
	}

	if status == http.StatusUnauthorized {
		return "", sessiongate.ErrUnauthorized
	}
	if status >= 500 || !resp.Success {
		return "", fmt.Errorf("%w: status %d", sessiongate.ErrNetworkFailure, status)
	}

	var data refreshResponse
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("%w: decoding refresh data: %v", sessiongate.ErrNetworkFailure, err)
	}
	return data.Token, nil
}

func (c *Client) request(ctx context.Context, method, path, token string, body any) (Response, int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return Response{}, 0, fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return Response{}, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return Response{}, 0, fmt.Errorf("%w: %v", sessiongate.ErrNetworkFailure, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil && httpResp.StatusCode < 500 {
		return Response{}, httpResp.StatusCode, fmt.Errorf("%w: decoding response: %v", sessiongate.ErrNetworkFailure, err)
	}

	return resp, httpResp.StatusCode, nil
}
