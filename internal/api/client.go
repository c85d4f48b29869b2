// Package api is a client for the paper generation backend. Every path is
// relative to the backend's /api prefix.
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

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the backend base URL, including the /api prefix.
	DefaultBaseURL = "http://localhost:8000/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit caps outgoing requests per second.
	RateLimit = 10.0

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 * 1024
)

// Client is a rate-limited HTTP client for the backend API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
	log        logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL. A trailing slash is ignored.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a new backend client.
func NewClient(opts ...ClientOption) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
		log:        discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins path (which starts with "/") and query onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send performs a request and returns the response when its status is below
// 400. The caller closes the body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNetworkError, err)
		c.logFailure(method, path, err)
		return nil, err
	}

	if err := checkHTTPErrors(resp, path); err != nil {
		resp.Body.Close()
		c.logFailure(method, path, err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) logFailure(method, path string, err error) {
	c.log.WithError(err).WithFields(logrus.Fields{
		"method": method,
		"path":   path,
	}).Warn("API request failed")
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, path string) error {
	if resp.StatusCode < 400 {
		return nil
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}

	code := "api_error"
	if resp.StatusCode == 404 {
		code = "not_found"
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    errorMessage(resp),
		Path:       path,
	}
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope
	if json.Unmarshal(data, &env) == nil && env.Error != "" {
		return env.Error
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// do sends a request with an optional JSON body and returns the raw response
// body after rejecting {"success": false} envelopes.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, query, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.readBody(resp, method, path)
}

func (c *Client) readBody(resp *http.Response, method, path string) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
		c.logFailure(method, path, err)
		return nil, err
	}

	var env envelope
	if json.Unmarshal(data, &env) == nil && env.Success != nil && !*env.Success {
		err := &APIError{
			StatusCode: resp.StatusCode,
			Code:       "api_error",
			Message:    env.Error,
			Path:       path,
		}
		c.logFailure(method, path, err)
		return nil, err
	}
	return data, nil
}

// decode unmarshals data into out, wrapping failures in ErrInvalidResponse.
func decode(data []byte, out any, what string) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrInvalidResponse, what, err)
	}
	return nil
}

// decodeData unmarshals the "data" member of an envelope into out.
func decodeData(data []byte, out any, what string) error {
	var env envelope
	if err := decode(data, &env, what); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: %s: missing data", ErrInvalidResponse, what)
	}
	return decode(env.Data, out, what)
}

// escapePath escapes each "/"-separated segment of an identifier.
func escapePath(id string) string {
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
