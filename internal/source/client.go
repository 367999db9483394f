// Package source holds the HTTP plumbing shared by the upstream API clients.
package source

import (
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

	"github.com/mmcdole/noor/internal/domain"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 2
	defaultRetryDelay = 500 * time.Millisecond
	userAgent         = "noor (+https://github.com/mmcdole/noor)"
)

// Config configures a Client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int           // extra attempts on 5xx; negative disables retries
	RetryDelay time.Duration // first backoff delay, doubled per attempt
}

// Client performs JSON GET requests against one upstream API
type Client struct {
	name       string
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client. name labels log lines.
func New(name string, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	switch {
	case retries == 0:
		retries = defaultMaxRetries
	case retries < 0:
		retries = 0
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &Client{
		name:       name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: retries,
		retryDelay: delay,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches path and decodes the body into dest.
//
// Transport failures map to domain.ErrOffline, non-2xx answers to
// domain.ErrUnexpectedStatus and undecodable bodies to
// domain.ErrInvalidResponse. 5xx answers are retried with exponential backoff.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("failed to decode response", "source", c.name, "path", path, "error", err)
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidResponse, c.name, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "source", c.name, "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		c.logger.Debug("api request", "source", c.name, "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			c.logger.Error("api request failed", "source", c.name, "url", reqURL, "error", err)
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrOffline, c.name, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: reading body: %v", domain.ErrOffline, c.name, err)
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%w: %s: %d", domain.ErrUnexpectedStatus, c.name, resp.StatusCode)
			c.logger.Warn("api server error, will retry",
				"source", c.name,
				"status", resp.StatusCode,
				"attempt", attempt,
				"maxRetries", c.maxRetries,
				"path", path,
			)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Error("api request error", "source", c.name, "status", resp.StatusCode, "body", truncate(body, 256))
			return nil, fmt.Errorf("%w: %s: %d", domain.ErrUnexpectedStatus, c.name, resp.StatusCode)
		}

		return body, nil
	}

	c.logger.Error("api request failed after retries", "source", c.name, "url", reqURL, "error", lastErr)
	return nil, lastErr
}

// Envelope is the {code, status, data} wrapper used by alquran.cloud and aladhan.com
type Envelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// Check reports an API-level failure carried in a 200 response
func (e Envelope[T]) Check() error {
	if e.Code != http.StatusOK {
		return fmt.Errorf("%w: api code %d (%s)", domain.ErrInvalidResponse, e.Code, e.Status)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
