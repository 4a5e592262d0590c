// Package portalapi is a client for the portal's REST API.
//
// Every method maps to one endpoint. There is no retry, batching or token
// refresh: a failed call returns its error and the caller decides what to
// render.
package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "http://localhost:8000/api/v1/"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// ErrInvalidPathSegment is returned without contacting the API when a slug or
// category cannot name a single resource.
var ErrInvalidPathSegment = errors.New("invalid path segment")

// IsNotFound reports whether err is a 404 from the API, or a path segment that
// could never name a resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrInvalidPathSegment) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// pathSegment escapes s for use as exactly one segment of an endpoint path.
func pathSegment(s string) (string, error) {
	if s == "" || s == "." || s == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPathSegment, s)
	}
	return url.PathEscape(s), nil
}

// Client talks to the API under a fixed base URL. It is safe for concurrent
// use; WithToken returns a copy rather than modifying the receiver.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithRateLimit caps outbound requests per second. Zero or less means no
// limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken returns a client that sends token as a bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// BaseURL is the URL every endpoint path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, path, nil, body, out)
}

// do sends one request. endpoint is a low-cardinality name used for metrics;
// path is an escaped path resolved against the base URL.
func (c *Client) do(ctx context.Context, method, endpoint, path string, query url.Values, body, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		observeRequest(endpoint, method, status, time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse %s path: %w", endpoint, err)
	}
	target := c.baseURL.ResolveReference(ref)
	if len(query) != 0 {
		target.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request body: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return fmt.Errorf("make %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	status = fmt.Sprintf("%dxx", resp.StatusCode/100)

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response body: %w", endpoint, err)
	}

	if category := resp.StatusCode / 100; category != 2 {
		return &StatusError{
			Method:     method,
			Path:       target.EscapedPath(),
			StatusCode: resp.StatusCode,
			Body:       string(responseBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

// getFirst is for the endpoints that wrap a single object in a one-element
// array. An empty array yields the zero value.
func getFirst[T any](ctx context.Context, c *Client, endpoint, path string) (T, error) {
	var (
		wrapped []T
		zero    T
	)
	if err := c.get(ctx, endpoint, path, nil, &wrapped); err != nil {
		return zero, err
	}
	if len(wrapped) == 0 {
		return zero, nil
	}
	return wrapped[0], nil
}

// message is the body returned by the toggle endpoints.
type message struct {
	Message string `json:"message"`
}
