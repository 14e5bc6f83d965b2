// Package client talks to the PageGuard admin API on behalf of the
// editing collaborator.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atinyakov/PageGuard/internal/models"
)

// AdminClient calls the bearer-protected admin endpoints.
type AdminClient struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

// NewAdminClient returns a client for the server at baseURL.
func NewAdminClient(baseURL, token string) *AdminClient {
	return &AdminClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

func protectionPath(itemID string) string {
	return "/api/admin/items/" + url.PathEscape(itemID) + "/protection"
}

// do sends body as JSON and decodes a 2xx response into out. A 404 is
// reported through the returned status with a nil error.
func (c *AdminClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Protect saves the protection record of an item.
func (c *AdminClient) Protect(ctx context.Context, itemID string, enabled bool, password string) (models.Protection, error) {
	var p models.Protection
	body := map[string]any{"enabled": enabled, "password": password}
	status, err := c.do(ctx, http.MethodPut, protectionPath(itemID), body, &p)
	if err == nil && status == http.StatusNotFound {
		err = fmt.Errorf("server error: %s not found", protectionPath(itemID))
	}
	return p, err
}

// Show returns the protection record of an item, or nil if it has none.
func (c *AdminClient) Show(ctx context.Context, itemID string) (*models.Protection, error) {
	var p models.Protection
	status, err := c.do(ctx, http.MethodGet, protectionPath(itemID), nil, &p)
	if err != nil || status == http.StatusNotFound {
		return nil, err
	}
	return &p, nil
}

// Purge removes the records of deleted items and returns how many existed.
func (c *AdminClient) Purge(ctx context.Context, itemIDs []string) (int64, error) {
	var res struct {
		Deleted int64 `json:"deleted"`
	}
	body := map[string][]string{"item_ids": itemIDs}
	if _, err := c.do(ctx, http.MethodDelete, "/api/admin/protections", body, &res); err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

// Settings fetches the global challenge settings.
func (c *AdminClient) Settings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	_, err := c.do(ctx, http.MethodGet, "/api/admin/settings", nil, &s)
	return s, err
}

// SaveSettings replaces the global challenge settings.
func (c *AdminClient) SaveSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	var saved models.Settings
	_, err := c.do(ctx, http.MethodPut, "/api/admin/settings", s, &saved)
	return saved, err
}
