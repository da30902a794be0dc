package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/pkg/config"
	appErrors "github.com/unirecords/client-go/pkg/errors"
	"github.com/unirecords/client-go/pkg/metrics"
)

const requestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer credential for outbound requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client issues JSON requests against the records service. It owns no retry
// or caching policy; callers layer those on top.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New builds a transport client from configuration.
func New(cfg config.APIConfig, tokens TokenSource, logger *zap.Logger, collector *metrics.Collector) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		logger:  logger,
		metrics: collector,
	}
}

// Do performs one request. On 2xx the response body is decoded into out
// (nil out discards it). Non-2xx responses become an http-kind error with
// the status and the server-provided message; connection failures become a
// network-kind error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(method, path, 0, latency)
		c.logger.Warn("request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		return appErrors.NewNetwork(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.ObserveRequest(method, path, resp.StatusCode, latency)
	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("latency", latency),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.NewNetwork(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErrors.NewHTTP(resp.StatusCode, serverMessage(raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// serverMessage digs a human-readable message out of an error body. The
// service answers either {"message": ...} or {"error": {...}} depending on
// the route; fall back to the raw body for anything else.
func serverMessage(raw []byte) string {
	var flat struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil {
		if flat.Message != "" {
			return flat.Message
		}
		if flat.Error != "" {
			return flat.Error
		}
	}
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}
	if len(raw) > 0 && len(raw) <= 256 {
		return string(bytes.TrimSpace(raw))
	}
	return ""
}
