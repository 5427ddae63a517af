// # internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sherlock/internal/engine/parser"
)

// ErrDisabled is returned by every call on a client built without a base URL.
var ErrDisabled = errors.New("indexer client not enabled")

// Client talks to a running indexer over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	enabled    bool
}

// New returns a client for baseURL. An empty baseURL yields a disabled
// client whose calls fail with ErrDisabled.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return &Client{enabled: false}
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		enabled: true,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}

// ExtractSymbols asks the indexer for the symbols of repo/file.
func (c *Client) ExtractSymbols(ctx context.Context, repo, file string) ([]parser.CodeSymbol, error) {
	var resp parser.ExtractResponse
	if err := c.post(ctx, "extract", repo, file, parser.ExtractRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Symbols, nil
}

// ExtractDependencies asks the indexer for the dependencies of repo/file.
func (c *Client) ExtractDependencies(ctx context.Context, repo, file string) ([]parser.CodeSymbol, error) {
	var resp parser.ExtractResponse
	if err := c.post(ctx, "extract-deps", repo, file, parser.ExtractRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Symbols, nil
}

// GetChunkHash hashes a 1-based inclusive line range of repo/file. Nil bounds
// select the first and last line.
func (c *Client) GetChunkHash(ctx context.Context, repo, file string, startLine, endLine *int) (string, error) {
	var resp parser.HashResponse
	req := parser.ExtractRequest{StartLine: startLine, EndLine: endLine}
	if err := c.post(ctx, "hash", repo, file, req, &resp); err != nil {
		return "", err
	}
	return resp.Hash, nil
}

func (c *Client) post(ctx context.Context, route, repo, file string, body parser.ExtractRequest, out any) error {
	if !c.enabled {
		return ErrDisabled
	}

	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, route, url.PathEscape(repo), escapeFilePath(file))
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("indexer request failed", "route", route, "file", file, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("indexer returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// escapeFilePath escapes each segment but keeps the slashes.
func escapeFilePath(file string) string {
	segments := strings.Split(strings.TrimLeft(file, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
