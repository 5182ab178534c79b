// Package postman is a read-only client for the Postman REST API. Every
// call is an authenticated GET; results are decoded snapshots the caller
// owns for the rest of the invocation.
package postman

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Postman API endpoint.
const DefaultBaseURL = "https://api.getpostman.com"

const defaultTimeout = 30 * time.Second

// Client issues authenticated requests against the Postman API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a client authenticating with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// APIError is a non-2xx response from the Postman API.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("postman api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("postman api: status %d", e.StatusCode)
}

// IsAuth reports whether the error is an authentication or authorization
// failure, typically a bad or expired API key.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the requested entity does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether the API throttled the request.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Me returns the identity behind the configured API key.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/me", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// ListWorkspaces returns every workspace the key can see.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var out struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.get(ctx, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out.Workspaces, nil
}

// GetWorkspace fetches one workspace by ID.
func (c *Client) GetWorkspace(ctx context.Context, id string) (WorkspaceDetail, error) {
	var out struct {
		Workspace WorkspaceDetail `json:"workspace"`
	}
	if err := c.get(ctx, "/workspaces/"+url.PathEscape(id), nil, &out); err != nil {
		return WorkspaceDetail{}, err
	}
	return out.Workspace, nil
}

// ListCollections returns collection summaries, scoped to a workspace
// when workspaceID is non-empty.
func (c *Client) ListCollections(ctx context.Context, workspaceID string) ([]CollectionSummary, error) {
	var params url.Values
	if workspaceID != "" {
		params = url.Values{"workspace": {workspaceID}}
	}
	var out struct {
		Collections []CollectionSummary `json:"collections"`
	}
	if err := c.get(ctx, "/collections", params, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

// GetCollection fetches the full collection document, including every
// folder and request.
func (c *Client) GetCollection(ctx context.Context, uid string) (*Collection, error) {
	var out struct {
		Collection Collection `json:"collection"`
	}
	if err := c.get(ctx, "/collections/"+url.PathEscape(uid), nil, &out); err != nil {
		return nil, err
	}
	return &out.Collection, nil
}

// ListEnvironments returns environment summaries, scoped to a workspace
// when workspaceID is non-empty.
func (c *Client) ListEnvironments(ctx context.Context, workspaceID string) ([]Environment, error) {
	var params url.Values
	if workspaceID != "" {
		params = url.Values{"workspace": {workspaceID}}
	}
	var out struct {
		Environments []Environment `json:"environments"`
	}
	if err := c.get(ctx, "/environments", params, &out); err != nil {
		return nil, err
	}
	return out.Environments, nil
}

// GetEnvironment fetches one environment, including its variables.
func (c *Client) GetEnvironment(ctx context.Context, id string) (EnvironmentDetail, error) {
	var out struct {
		Environment EnvironmentDetail `json:"environment"`
	}
	if err := c.get(ctx, "/environments/"+url.PathEscape(id), nil, &out); err != nil {
		return EnvironmentDetail{}, err
	}
	return out.Environment, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Error struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Name = envelope.Error.Name
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
