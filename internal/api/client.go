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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/utils"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-Id"

// DefaultTimeout applies when no timeout is configured
const DefaultTimeout = 30 * time.Second

// Doer sends HTTP requests; *http.Client satisfies it
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client represents the banking API client
type Client struct {
	BaseURL    string
	HTTPClient Doer
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.HTTPClient = d
	}
}

// WithTimeout sets the timeout of the default transport
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.HTTPClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger sets the logger requests are traced to
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one API round trip
type call struct {
	method   string
	path     string
	token    string
	query    url.Values
	body     interface{}
	out      interface{}
	fallback string
}

// do executes a call. Non-2xx responses become *utils.APIError with the server's message.
func (c *Client) do(ctx context.Context, cl call) error {
	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.BaseURL + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("method", cl.method).
			Str("path", cl.path).
			Str("request_id", requestID).
			Msg("api request failed")
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", cl.method).
		Str("path", cl.path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body, cl.fallback)
	}

	if cl.out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte, fallback string) error {
	var eb models.ErrorBody
	_ = json.Unmarshal(body, &eb)

	message := eb.Text()
	if message == "" {
		message = fallback
	}
	if message == "" {
		message = http.StatusText(status)
	}

	code := ""
	if eb.Message != "" {
		code = eb.Error
	}
	return utils.NewAPIError(status, message, code)
}

// Raw sends an arbitrary request and returns the decoded JSON body. A nil body sends
// no payload.
func (c *Client) Raw(ctx context.Context, method, path, token string, body interface{}) (interface{}, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	var out interface{}
	err := c.do(ctx, call{method: strings.ToUpper(method), path: path, token: token, body: body, out: &out})
	return out, err
}
