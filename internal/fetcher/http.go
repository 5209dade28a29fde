package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jeanpaul/factcollector/internal/schema"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 512 * 1024

const defaultTimeout = 10 * time.Second

// Option configures a fetcher.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	validator  *schema.Validator
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.userAgent = ua }
}

// WithSchemaValidation checks JSON bodies against the response schema before
// extracting the fact. Ignored by non-JSON fetchers.
func WithSchemaValidation(v *schema.Validator) Option {
	return func(s *settings) { s.validator = v }
}

func newSettings(opts []Option) settings {
	s := settings{
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// client performs the single GET every fetcher is built on.
type client struct {
	settings
	endpoint string
}

func (c *client) Endpoint() string { return c.endpoint }

func (c *client) get(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: c.endpoint, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Kind: KindHTTPStatus, URL: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: c.endpoint, Err: err}
	}
	if len(body) > maxBodySize {
		return nil, malformed(c.endpoint, "response body exceeds %d bytes", maxBodySize)
	}
	return body, nil
}
