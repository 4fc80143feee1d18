package api

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

	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/google/uuid"
)

// TokenStore provides the persisted access token. It is read on every
// authenticated call so a refreshed token is picked up immediately.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client talks to the todo REST API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenStore
	jar        *persistentJar
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates an API client for baseURL. cookies may be nil, in which
// case cookies only live for the lifetime of the client.
func NewClient(baseURL string, tokens TokenStore, cookies CookieStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	jar, err := newPersistentJar(u, cookies)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		tokens:     tokens,
		jar:        jar,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes a single API call
type request struct {
	op     string
	method string
	path   string
	body   interface{}
	auth   bool
}

// do performs the call and decodes a success body into out (if non-nil).
// Any non-2xx status or transport failure becomes an *apperr.RequestError.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return &apperr.RequestError{Op: r.op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL.String() + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return &apperr.RequestError{Op: r.op, Err: err}
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.auth && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return &apperr.RequestError{Op: r.op, Err: fmt.Errorf("read access token: %w", err)}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.Debug("HTTP Request",
		logger.F("method", r.method),
		logger.F("url", endpoint),
		logger.F("request_id", requestID))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("HTTP request failed", logger.Err(err), logger.F("url", endpoint), logger.F("request_id", requestID))
		return &apperr.RequestError{Op: r.op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.Debug("HTTP Response",
		logger.F("status", resp.StatusCode),
		logger.F("request_id", requestID),
		logger.F("latency", time.Since(start).String()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := errorMessage(respBody)
		logger.Warn("API call failed",
			logger.F("op", r.op),
			logger.F("status", resp.StatusCode),
			logger.F("response", msg))
		return &apperr.RequestError{Op: r.op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.RequestError{Op: r.op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts {"message": ...} or {"error": ...} from an error body
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
