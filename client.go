// Package unsplash is a client for the Unsplash photo API that keeps track of
// the rate limit headers of its last response.
//
// Calls return the decoded JSON body as generic data (map[string]any or
// []any); no schema is applied. The headers of the most recent response are
// available through LastResponseHeaders, which is what the ratelimiter.Gate
// reads to refresh its telemetry.
package unsplash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/jassus213/go-unsplash/logger"
	"github.com/jassus213/go-unsplash/ratelimiter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client executes calls against the Unsplash API.
//
// A Client may be shared between goroutines, but it keeps two pieces of
// per-instance state: the options staged with WithOptions and the headers of
// the last response. Staged options are taken by whichever call runs next, and
// LastResponseHeaders reflects whichever call finished last. Callers that rely
// on either must serialize their calls or use one Client per request.
type Client struct {
	accessKey  string
	baseURL    *url.URL
	httpClient *http.Client
	logger     logger.Logger

	mu                  sync.Mutex
	temporaryOptions    Options
	lastResponseHeaders http.Header
}

var _ ratelimiter.HeaderSource = (*Client)(nil)

// NewClient creates a Client authenticating with the given access key.
func NewClient(accessKey string, opts ...ConfigOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	base := cfg.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.baseURL)
	}

	return &Client{
		accessKey: accessKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Transport: cfg.transport,
			Timeout:   cfg.timeout,
		},
		logger: cfg.logger,
	}, nil
}

// WithOptions stages opts for the next call made on c and returns c so the
// call can be chained:
//
//	photos, err := client.WithOptions(unsplash.Headers(map[string]any{"Accept-Language": "de"})).
//		SearchPhotos(ctx, "berlin", 10, 1)
//
// The options apply to exactly one call and are discarded afterwards, whether
// it succeeded or not. Staging twice before a call keeps only the second set.
// This mutates shared state; prefer passing Options to Execute directly when
// the Client is used from several goroutines.
func (c *Client) WithOptions(opts Options) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temporaryOptions = opts
	return c
}

// LastResponseHeaders returns a copy of the headers of the most recent
// response, or an empty header set if no call has completed yet. A call that
// failed at the transport level does not change it.
func (c *Client) LastResponseHeaders() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResponseHeaders == nil {
		return http.Header{}
	}
	return c.lastResponseHeaders.Clone()
}

// Execute performs one call and returns the decoded JSON body.
//
// opts are merged with any staged options using MergeOptions. For a non-2xx
// response the body is still decoded when possible and returned along with an
// *ApiError of type TypeHTTPStatus.
func (c *Client) Execute(ctx context.Context, method Method, path string, opts Options) (any, error) {
	staged := c.takeTemporaryOptions()
	merged := MergeOptions(opts, staged)

	req, err := c.newRequest(ctx, method, path, merged)
	if err != nil {
		return nil, &ApiError{
			Stage:     StageBeforeRequest,
			Type:      TypeRequestPrep,
			Method:    method,
			Path:      path,
			SourceErr: err,
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s failed: %v", method, path, err)
		return nil, &ApiError{
			Stage:     StageRequest,
			Type:      TypeIO,
			Method:    method,
			Path:      path,
			SourceErr: err,
		}
	}
	defer func() { _ = res.Body.Close() }()

	c.storeLastResponseHeaders(res)
	c.logger.Debugf("%s %s -> %d (remaining: %s)", method, path, res.StatusCode, res.Header.Get(ratelimiter.HeaderRemaining))

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ApiError{
			Stage:      StageAfterRequest,
			Type:       TypeIO,
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Body:       body,
			SourceErr:  err,
		}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Best effort to return some data
		decoded, _ := decode(body)
		return decoded, &ApiError{
			Stage:      StageAfterRequest,
			Type:       TypeHTTPStatus,
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Body:       body,
		}
	}

	decoded, err := decode(body)
	if err != nil {
		return nil, &ApiError{
			Stage:      StageAfterRequest,
			Type:       TypeJSONParse,
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Body:       body,
			SourceErr:  err,
		}
	}
	return decoded, nil
}

// Get is Execute with MethodGet.
func (c *Client) Get(ctx context.Context, path string, opts Options) (any, error) {
	return c.Execute(ctx, MethodGet, path, opts)
}

func (c *Client) takeTemporaryOptions() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	opts := c.temporaryOptions
	c.temporaryOptions = nil
	return opts
}

func (c *Client) storeLastResponseHeaders(res *http.Response) {
	headers := res.Header.Clone()
	if headers == nil {
		headers = http.Header{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastResponseHeaders = headers
}

// decode parses a JSON body. An empty body decodes to nil.
func decode(body []byte) (any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}
