// Package api is the ClassConnect platform REST client. All remote calls
// made by the CLI go through one Client so that authentication behaves the
// same everywhere.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// TokenSource returns the bearer token for the current session, or the empty
// string when unauthenticated. The token is read at request-issue time, so a
// login or logout that completes before a request starts is always observed
// and requests can never race a header mutation.
type TokenSource func() string

// Client is the ClassConnect platform API client
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	TokenSource TokenSource
}

// NewClient creates a new platform API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithTokenSource sets the token source consulted on every request.
func (c *Client) WithTokenSource(source TokenSource) *Client {
	c.TokenSource = source
	return c
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.TokenSource != nil {
		if token := c.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	return resp, nil
}

// parseResponse parses the response body into the target struct.
// Non-2xx responses become a *ServerError built from the error body.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return newServerError(resp.StatusCode, body)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeServerDecode, "failed to decode response", err)
		}
	}

	return nil
}

// do issues a request and decodes a successful JSON response into target.
func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return parseResponse(resp, target)
}
