// Package api is the typed client for the back-office REST API. All
// business validation and persistence happens server-side; this package
// only shapes requests, injects the bearer token, and turns error
// responses into readable messages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource supplies the current bearer token. An empty string means no
// session; the Authorization header is omitted.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client issues authenticated requests against the back-office API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New creates a Client for the given base URL. tokens may be nil for a
// client that never authenticates.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// APIError is a non-2xx response reduced to one human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// errorBody is the structured error payload the back office returns.
// 422 responses carry per-field validation messages under "errors".
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// validationFields is the priority order for picking one message out of a
// 422 payload: domain-specific fields first, generic ones last.
var validationFields = []string{
	"nombre",
	"email",
	"password",
	"telefono",
	"direccion",
	"precio",
	"cantidad",
	"categoria_id",
	"descripcion",
}

// do issues a JSON request and decodes the JSON response into out (which
// may be nil for endpoints with no interesting body).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send finishes a prepared request: sets common headers, runs it, and
// maps the response.
func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns an error response into an *APIError with the most
// specific message available. For 422 validation payloads the known
// fields are checked in priority order; failing that, the first field
// with a message wins; failing that, the top-level message; failing
// everything, a generic status message.
func decodeError(status int, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	if status == http.StatusUnprocessableEntity && len(body.Errors) > 0 {
		for _, field := range validationFields {
			if msgs := body.Errors[field]; len(msgs) > 0 {
				return &APIError{Status: status, Message: msgs[0]}
			}
		}
		for _, msgs := range body.Errors {
			if len(msgs) > 0 {
				return &APIError{Status: status, Message: msgs[0]}
			}
		}
	}

	if body.Message != "" {
		return &APIError{Status: status, Message: body.Message}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("error HTTP %d", status)}
}
