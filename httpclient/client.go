package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/taskflow/resilience"
)

// idleConnsPerHost matches the default engine threshold: a bounded batch
// fans out to the same host.
const idleConnsPerHost = 100

// Client issues requests with a whole-call timeout, default headers and an
// optional rate limit. It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *resilience.RateLimiter
}

// New validates cfg, with defaults applied, and builds a client.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = idleConnsPerHost

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Transport: transport, Timeout: cfg.Timeout},
	}
	if cfg.RateLimiter.Enabled() {
		c.limiter = resilience.NewRateLimiter(cfg.RateLimiter)
	}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Get is Do with a bare GET of path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Path: path})
}

// Do sends req and reads the reply. A non-2xx reply returns both the
// response and a status *Error; every other failure returns an *Error only.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyTransportError(ctx, err)
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := c.read(resp)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	if statusErr := ClassifyStatusCode(out.StatusCode); statusErr != nil {
		return out, statusErr
	}
	return out, nil
}

// read consumes at most MaxBodyBytes of the body; one extra byte tells
// whether anything was cut off.
func (c *Client) read(resp *http.Response) (*Response, error) {
	limit := c.cfg.MaxBodyBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if int64(len(body)) > limit {
		out.Body = body[:limit]
		out.Truncated = true
	}
	return out, nil
}

// newRequest layers request headers over the configured defaults.
func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	r, err := http.NewRequestWithContext(ctx, req.method(), req.target(c.cfg.BaseURL), nil)
	if err != nil {
		return nil, NewValidationError("create request: " + err.Error())
	}
	for k, v := range c.cfg.Headers {
		r.Header.Set(k, v)
	}
	for k, vs := range req.Header {
		r.Header[http.CanonicalHeaderKey(k)] = vs
	}
	if len(req.Query) > 0 {
		q := r.URL.Query()
		for k, vs := range req.Query {
			q[k] = vs
		}
		r.URL.RawQuery = q.Encode()
	}
	return r, nil
}

// Close drops idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
