package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/muurk/selectbox/internal/version"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the initial delay between retry attempts
	DefaultRetryDelay = 200 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	// DefaultCacheDuration is how long a successful response is reused
	DefaultCacheDuration = 30 * time.Second

	// DefaultCacheSize is the number of distinct URLs kept in the cache
	DefaultCacheSize = 128

	maxResponseSize = 8 << 20
)

// Client loads the raw option list for a fully composed request URL.
type Client func(ctx context.Context, url string) ([]any, error)

// Formatter maps one raw response item to an option object.
type Formatter func(item any) any

// HTTPClient fetches option lists as JSON over HTTP. Identical concurrent
// requests share one round trip and successful responses are cached.
type HTTPClient struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// Header is added to every request
	Header http.Header

	// MaxRetries is the maximum number of retry attempts for retryable failures
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	cache *expirable.LRU[string, []any]
	group singleflight.Group
}

// NewHTTPClient creates a client with default timeouts, retries and caching.
func NewHTTPClient() *HTTPClient {
	c := &HTTPClient{
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
		Header:        http.Header{},
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
	}
	c.SetCacheDuration(DefaultCacheDuration)
	return c
}

// SetTimeout sets the HTTP request timeout
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *HTTPClient) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// SetCacheDuration replaces the response cache. Zero disables caching.
func (c *HTTPClient) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		c.cache = nil
		return
	}
	c.cache = expirable.NewLRU[string, []any](DefaultCacheSize, nil, d)
}

// InvalidateCache drops every cached response.
func (c *HTTPClient) InvalidateCache() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Client returns c as a Client function.
func (c *HTTPClient) Client() Client {
	return c.Fetch
}

// Fetch returns the option list at url.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]any, error) {
	if c.cache != nil {
		if items, ok := c.cache.Get(url); ok {
			return items, nil
		}
	}

	ch := c.group.DoChan(url, func() (any, error) {
		// shared by every caller waiting on this url, so not tied to one ctx
		return c.fetchWithRetry(context.WithoutCancel(ctx), url)
	})

	select {
	case <-ctx.Done():
		return nil, NewNetworkError("request abandoned", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items := res.Val.([]any)
		if c.cache != nil {
			c.cache.Add(url, items)
		}
		return items, nil
	}
}

func (c *HTTPClient) fetchWithRetry(ctx context.Context, url string) ([]any, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.RetryDelay
	b.MaxInterval = c.MaxRetryDelay
	b.MaxElapsedTime = 0

	var policy backoff.BackOff = b
	if c.MaxRetries >= 0 {
		policy = backoff.WithMaxRetries(b, uint64(c.MaxRetries))
	}

	var items []any
	err := backoff.Retry(func() error {
		var err error
		items, err = c.fetchAttempt(ctx, url)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// fetchAttempt performs a single GET
func (c *HTTPClient) fetchAttempt(ctx context.Context, url string) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewParseError(fmt.Sprintf("invalid request URL %q", url), err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", version.UserAgent())
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fe := NewNetworkError("GET request failed", err)
		fe.URL = url
		return nil, fe
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
		fe.URL = url
		return nil, fe
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}
	return DecodeList(body)
}

// listKeys are the envelope keys accepted around a response array.
var listKeys = []string{"data", "results", "items", "options"}

// DecodeList parses a JSON array, or an object wrapping one under a known
// key. Numbers are kept as json.Number so large ids survive intact.
func DecodeList(body []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, NewParseError("empty response", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, NewParseError("failed to parse JSON response", err)
	}

	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		for _, k := range listKeys {
			if list, ok := t[k].([]any); ok {
				return list, nil
			}
		}
		return nil, NewParseError(fmt.Sprintf("response object has none of %s", strings.Join(listKeys, ", ")), nil)
	default:
		return nil, NewParseError(fmt.Sprintf("response is %T, want a list", v), nil)
	}
}
