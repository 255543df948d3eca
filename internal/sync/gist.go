// Package sync mirrors the snapshot to a private GitHub Gist. The gist is
// an opaque blob store: create returns a handle (the gist id), update and
// fetch operate on it, and both the handle and the bearer token are
// user-supplied configuration the rest of the app never interprets.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL  = "https://api.github.com"
	blobFileName    = "sidequest_data.json"
	gistDescription = "sidequest data backup"

	requestTimeout = 15 * time.Second
)

// ErrNotFound reports that the remote blob does not exist.
var ErrNotFound = errors.New("remote blob not found")

// Client talks to the Gist API with a user-supplied bearer token.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given token.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetBaseURL overrides the API endpoint (used by tests).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Create uploads the blob as a new private gist and returns its id.
func (c *Client) Create(ctx context.Context, data []byte) (string, error) {
	private := false
	payload := gistPayload{
		Description: gistDescription,
		Public:      &private,
		Files:       map[string]gistFile{blobFileName: {Content: string(data)}},
	}

	var resp gistResponse
	if err := c.do(ctx, http.MethodPost, "/gists", &payload, &resp); err != nil {
		return "", fmt.Errorf("create gist: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create gist: empty id in response")
	}
	return resp.ID, nil
}

// Update overwrites the blob stored under the given gist id.
func (c *Client) Update(ctx context.Context, gistID string, data []byte) error {
	payload := gistPayload{
		Files: map[string]gistFile{blobFileName: {Content: string(data)}},
	}
	if err := c.do(ctx, http.MethodPatch, "/gists/"+gistID, &payload, nil); err != nil {
		return fmt.Errorf("update gist: %w", err)
	}
	return nil
}

// Fetch downloads the blob stored under the given gist id. A missing gist
// or a gist without the data file yields ErrNotFound.
func (c *Client) Fetch(ctx context.Context, gistID string) ([]byte, error) {
	var resp gistResponse
	if err := c.do(ctx, http.MethodGet, "/gists/"+gistID, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch gist: %w", err)
	}
	file, ok := resp.Files[blobFileName]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(file.Content), nil
}

// ValidateToken checks the token by requesting the authenticated user and
// returns the account login.
func (c *Client) ValidateToken(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return "", fmt.Errorf("validate token: %w", err)
	}
	return user.Login, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("%s (%s)", apiErr.Message, resp.Status)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
