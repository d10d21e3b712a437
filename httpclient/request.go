package httpclient

import (
	"net/http"
	"net/url"
	"strings"
)

// Request is one outbound call. The zero Method is GET.
type Request struct {
	Method string
	// Path is joined to Config.BaseURL unless it is already absolute.
	Path   string
	Header http.Header
	Query  url.Values
}

// target resolves the request URL against base.
func (r Request) target(base string) string {
	if base == "" || strings.HasPrefix(r.Path, "http://") || strings.HasPrefix(r.Path, "https://") {
		return r.Path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(r.Path, "/")
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Response is a fully read reply.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body holds at most Config.MaxBodyBytes bytes.
	Body []byte
	// Truncated is set when the body was longer than Config.MaxBodyBytes.
	Truncated bool
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
