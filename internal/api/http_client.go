package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todoui/internal/model"
)

const maxResponseBytes = 4 << 20

var _ Client = (*HTTPClient)(nil)

// HTTPClient calls the RPC procedures over HTTP with JSON bodies.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. The client is never
// modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every call. Zero means no client-side limit.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("api: base url is required")
	}
	c := &HTTPClient{
		baseURL: base,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, in CreateTodoInput) (model.Todo, error) {
	var out model.Todo
	if err := c.call(ctx, ProcCreateTodo, in, &out); err != nil {
		return model.Todo{}, err
	}
	return out, nil
}

func (c *HTTPClient) ListTodos(ctx context.Context, in ListTodosInput) ([]model.Todo, error) {
	out := make([]model.Todo, 0)
	if err := c.call(ctx, ProcListTodos, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateTodoStatus(ctx context.Context, in UpdateTodoStatusInput) (model.Todo, error) {
	var out model.Todo
	if err := c.call(ctx, ProcUpdateTodoStatus, in, &out); err != nil {
		return model.Todo{}, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, in DeleteTodoInput) (DeleteTodoResult, error) {
	var out DeleteTodoResult
	if err := c.call(ctx, ProcDeleteTodo, in, &out); err != nil {
		return DeleteTodoResult{}, err
	}
	return out, nil
}

func (c *HTTPClient) call(ctx context.Context, procedure string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", procedure, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/"+procedure, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", procedure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", procedure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", procedure, err)
	}

	failed := resp.StatusCode < 200 || resp.StatusCode > 299
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if failed {
			return &RemoteError{
				Procedure: procedure,
				Status:    resp.StatusCode,
				Code:      codeForStatus(resp.StatusCode),
				Message:   strings.TrimSpace(string(raw)),
			}
		}
		return fmt.Errorf("%s: decode response: %w", procedure, err)
	}
	if failed || env.Error != nil {
		re := &RemoteError{Procedure: procedure, Status: resp.StatusCode, Code: codeForStatus(resp.StatusCode)}
		if env.Error != nil {
			re.Code = env.Error.Code
			re.Message = env.Error.Message
		}
		return re
	}
	if len(env.Result) == 0 {
		return fmt.Errorf("%s: response has no result", procedure)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", procedure, err)
	}
	return nil
}
