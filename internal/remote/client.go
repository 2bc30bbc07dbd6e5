// Package remote is a thin client for the todo REST resource.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/todo/internal/model"
)

const (
	resourcePath    = "/todos"
	requestIDHeader = "X-Request-ID"
)

// Client talks to one todo resource. It never retries and sets no timeout
// of its own; deadlines come from the caller's context.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient returns a client for the resource under baseURL
// (e.g. http://localhost:8000).
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		base:       u,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches the full collection.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, "list", http.MethodGet, c.collectionURL(), nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Get fetches a single todo.
func (c *Client) Get(ctx context.Context, id model.ID) (model.Todo, error) {
	var td model.Todo
	err := c.doItem(ctx, "get", http.MethodGet, id, nil, &td)
	return td, err
}

// Create posts a new todo and returns the server's record.
func (c *Client) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	var td model.Todo
	err := c.do(ctx, "create", http.MethodPost, c.collectionURL(), in, &td)
	return td, err
}

// Update sends a partial update and returns the full updated record.
func (c *Client) Update(ctx context.Context, id model.ID, patch model.Patch) (model.Todo, error) {
	var td model.Todo
	err := c.doItem(ctx, "update", http.MethodPut, id, patch, &td)
	return td, err
}

// Delete removes a todo. The response body, if any, is ignored.
func (c *Client) Delete(ctx context.Context, id model.ID) error {
	return c.doItem(ctx, "delete", http.MethodDelete, id, nil, nil)
}

func (c *Client) collectionURL() string {
	return c.base.JoinPath(resourcePath).String()
}

// doItem addresses a single todo. Ids that would resolve to another path
// once cleaned are refused without a request.
func (c *Client) doItem(ctx context.Context, op, method string, id model.ID, in, out any) error {
	switch strings.TrimSpace(string(id)) {
	case "", ".", "..":
		return &RequestError{Op: op, Method: method, Err: fmt.Errorf("%w: %q", ErrInvalidID, string(id))}
	}
	target := c.base.JoinPath(resourcePath, url.PathEscape(string(id))).String()
	return c.do(ctx, op, method, target, in, out)
}

func (c *Client) do(ctx context.Context, op, method, target string, in, out any) error {
	reqErr := func(status int, detail string, err error) error {
		return &RequestError{Op: op, Method: method, URL: target, StatusCode: status, Detail: detail, Err: err}
	}

	var body io.Reader
	if in != nil {
		r, err := encodeBody(in)
		if err != nil {
			return reqErr(0, "", err)
		}
		body = r
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return reqErr(0, "", fmt.Errorf("new request: %w", err))
	}
	rid := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, rid)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("todo request failed", "op", op, "method", method, "url", target, "request_id", rid, "error", err)
		return reqErr(0, "", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("todo request",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", rid,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := errorDetail(resp.Body)
		c.logger.Warn("todo request rejected", "op", op, "status", resp.StatusCode, "detail", detail, "request_id", rid)
		return reqErr(resp.StatusCode, detail, errors.New(http.StatusText(resp.StatusCode)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	if err := decodeBody(resp.Body, out); err != nil {
		return reqErr(resp.StatusCode, "", err)
	}
	return nil
}
