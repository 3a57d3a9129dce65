// Package wordpress is a read-only client for the WordPress REST API.
//
// Every call is a GET relative to a configured base URL such as
// https://example.com/wp-json/wp/v2. Failures are reported as one of the
// error kinds in errors.go so callers can tell a misconfigured base URL from
// a server fault.
package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KingAbe1/wp-next-blog/internal/metrics"
	"github.com/KingAbe1/wp-next-blog/internal/storage"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "wp-next-blog/1.0"
	defaultPostsPath = "/article"
	defaultCacheTTL  = time.Hour
	maxBodyBytes     = 10 * 1024 * 1024
)

// ResponseCache stores raw response bodies between requests.
// *storage.Store implements it.
type ResponseCache interface {
	GetResponse(ctx context.Context, key string, maxAge time.Duration) (*storage.CachedResponse, error)
	PutResponse(ctx context.Context, resp *storage.CachedResponse) error
}

var _ ResponseCache = (*storage.Store)(nil)

// Options configures a Client. The zero value is usable.
type Options struct {
	// HTTPClient overrides the default client (logging transport).
	HTTPClient *http.Client
	// Timeout of the default client, 30s when zero. Ignored with HTTPClient.
	Timeout   time.Duration
	UserAgent string
	// PostsPath is the collection path of posts, "/article" by default.
	PostsPath string
	// Cache enables the revalidation window. Nil disables caching.
	Cache    ResponseCache
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
}

// Meta describes a successful response beyond its body.
type Meta struct {
	// Total and TotalPages come from X-WP-Total and X-WP-TotalPages. They are
	// nil when the header is missing or unparsable.
	Total      *int
	TotalPages *int
	// Cached is true when the body was served from the response cache.
	Cached bool
}

// Client talks to one WordPress REST API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	postsPath string
	cache     ResponseCache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
}

// NewClient builds a Client for baseURL. An empty baseURL is accepted; every
// call on such a client fails with ErrConfiguration.
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:      opts.HTTPClient,
		userAgent: opts.UserAgent,
		postsPath: opts.PostsPath,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		metrics:   opts.Metrics,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{base: http.DefaultTransport},
		}
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.postsPath == "" {
		c.postsPath = defaultPostsPath
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = defaultCacheTTL
	}
	return c
}

// BaseURL returns the normalized base URL, empty when unconfigured.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get requests path (relative to the base URL) with the given query and
// decodes the JSON body into dest.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest any) (Meta, error) {
	if c == nil || c.baseURL == "" {
		return Meta{}, ErrConfiguration
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	endpoint := endpointLabel(path)

	if meta, ok := c.fromCache(ctx, reqURL, endpoint, dest); ok {
		return meta, nil
	}

	start := time.Now()
	body, meta, err := c.fetch(ctx, reqURL)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, outcomeOf(err), time.Since(start))
		return Meta{}, err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.metrics.ObserveUpstream(endpoint, "format", time.Since(start))
		return Meta{}, &FormatError{URL: reqURL, ContentType: "application/json", Err: err}
	}
	c.metrics.ObserveUpstream(endpoint, "ok", time.Since(start))

	c.toCache(ctx, reqURL, body, meta)
	return meta, nil
}

// fetch performs the request and returns the validated, unparsed body.
func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Meta{}, &TransportError{URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Meta{}, &HTTPStatusError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return nil, Meta{}, &FormatError{URL: reqURL, ContentType: contentType}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Meta{}, &TransportError{URL: reqURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	meta := Meta{
		Total:      headerInt(resp.Header, "X-WP-Total"),
		TotalPages: headerInt(resp.Header, "X-WP-TotalPages"),
	}
	return body, meta, nil
}

func (c *Client) fromCache(ctx context.Context, key, endpoint string, dest any) (Meta, bool) {
	if c.cache == nil {
		return Meta{}, false
	}
	cached, err := c.cache.GetResponse(ctx, key, c.cacheTTL)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("response cache lookup failed", "url", key, "error", err)
		}
		return Meta{}, false
	}
	if err := json.Unmarshal(cached.Body, dest); err != nil {
		slog.Warn("discarding undecodable cached response", "url", key, "error", err)
		return Meta{}, false
	}
	c.metrics.CacheHit(endpoint)
	return Meta{Total: cached.Total, TotalPages: cached.TotalPages, Cached: true}, true
}

func (c *Client) toCache(ctx context.Context, key string, body []byte, meta Meta) {
	if c.cache == nil {
		return
	}
	err := c.cache.PutResponse(ctx, &storage.CachedResponse{
		Key:        key,
		Body:       body,
		Total:      meta.Total,
		TotalPages: meta.TotalPages,
	})
	if err != nil {
		slog.Warn("response cache store failed", "url", key, "error", err)
	}
}

// endpointLabel reduces a request path to its first segment so metric
// labels stay bounded: "/media/12" → "media".
func endpointLabel(path string) string {
	first, _, _ := strings.Cut(strings.Trim(path, "/"), "/")
	if first == "" {
		return "root"
	}
	return first
}

func outcomeOf(err error) string {
	var (
		statusErr    *HTTPStatusError
		formatErr    *FormatError
		transportErr *TransportError
	)
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "error"
	}
}

// statusText returns the reason phrase of resp, "Not Found" for a
// "404 Not Found" status line.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

func headerInt(h http.Header, key string) *int {
	raw := strings.TrimSpace(h.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// loggingTransport logs every outbound request at debug level.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		slog.Debug("wordpress request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", time.Since(start).String(),
			"error", err,
		)
		return nil, err
	}
	slog.Debug("wordpress request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)
	return resp, nil
}
