// Package httpclient provides the outbound HTTP client used by the fetch
// step of a task blueprint.
//
// The Client owns protocol concerns only: URL resolution, default headers,
// an overall request timeout, optional client-side rate limiting, and the
// classification of failures into timeouts, connection errors and
// non-success statuses. Callers decide what a failure means for them.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://httpbin.org",
//	    Timeout: 10 * time.Second,
//	})
//
//	resp, err := client.Get(ctx, "/get")
//	switch {
//	case httpclient.IsTimeout(err):
//	    // deadline hit
//	case httpclient.IsStatus(err):
//	    // non-2xx response, resp.StatusCode is set
//	}
//
// # With Rate Limiting
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://httpbin.org",
//	    RateLimiter: resilience.RateLimiterConfig{Rate: 50, Burst: 100},
//	})
package httpclient
