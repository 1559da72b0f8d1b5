// Package swapi is the HTTP transport for the Star Wars API.
package swapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/holocron/pkg/version"
)

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 8 << 20

// requestIDHeader carries a per-request id for correlating logs.
const requestIDHeader = "X-Request-Id"

// ErrBodyTooLarge is returned when a response exceeds maxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return "HTTP " + strconv.Itoa(e.StatusCode)
}

// Fetcher retrieves a URL's body. Client implements it; tests substitute fakes.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client performs GET requests against the API.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	logger zerolog.Logger
}

// NewClient returns a Client. A zero timeout means requests never time out.
func NewClient(timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  version.UserAgent(),
		logger:     logger.With().Str("component", "swapi").Logger(),
	}
}

// Get fetches url and returns the body. Non-2xx statuses yield *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger.Debug().Ctx(ctx).
			Str("request_id", requestID).
			Str("url", url).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Ctx(ctx).
		Str("request_id", requestID).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: %s", ErrBodyTooLarge, url)
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
