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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/altinukshini/assetflow-tui/internal/cache"
	"github.com/altinukshini/assetflow-tui/internal/metrics"
)

// ErrUnauthorized matches StatusErrors for 401 and 403 responses.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.ResponseCache
	log     logrus.FieldLogger
	metrics *metrics.Metrics

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCache(rc *cache.ResponseCache) Option {
	return func(c *Client) { c.cache = rc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken replaces the bearer token. Cached responses belong to the
// previous identity and are dropped.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.cache.Purge()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// PurgeCache forces the next GETs to hit the server.
func (c *Client) PurgeCache() {
	c.cache.Purge()
}

// Get decodes the JSON body of GET path into result, serving it from the
// response cache when a fresh copy exists.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	if body, ok := c.cache.Get(path); ok {
		c.metrics.RecordCacheLookup(true)
		return decode(http.MethodGet, path, body, result)
	}
	if c.cache != nil {
		c.metrics.RecordCacheLookup(false)
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decode(http.MethodGet, path, body, result); err != nil {
		return err
	}
	c.cache.Add(path, body)
	return nil
}

func (c *Client) Post(ctx context.Context, path string, payload any, result any) error {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	body, err := c.do(ctx, http.MethodPost, path, reader)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return decode(http.MethodPost, path, body, result)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	reqID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": reqID,
	})

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	c.metrics.RecordAPIRequest(method, resp.StatusCode)
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("request returned error status")
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}
	log.Debug("request complete")
	return data, nil
}

func decode(method, path string, body []byte, result any) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
