package http

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// ErrEmptyBody is returned by Bind when the request has no body.
var ErrEmptyBody = errors.New("empty request body")

// Request wraps *http.Request with input helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// JSON bodies map via `json:"name"`; url-encoded forms are mapped through the
// same tags.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") {
		return req.bindJSON(v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return errors.Wrap(err, "parse form")
	}
	return bindForm(req.raw.PostForm, v)
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return errors.Wrap(json.Unmarshal(body, v), "decode json body")
}

// bindForm round-trips the form values through JSON so the struct's json tags
// apply. Repeated keys become arrays.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "encode form")
	}
	return errors.Wrap(json.Unmarshal(b, v), "decode form")
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// UserAgent returns the User-Agent header.
func (req *Request) UserAgent() string { return req.raw.UserAgent() }

// IP returns the client address without its port. Behind the RealIP
// middleware this is the forwarded address.
func (req *Request) IP() string {
	host, _, err := net.SplitHostPort(req.raw.RemoteAddr)
	if err != nil {
		return req.raw.RemoteAddr
	}
	return host
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// RoutePattern returns the chi pattern that matched, e.g. "/api/todos/{id}".
// It is empty before routing.
func (req *Request) RoutePattern() string {
	rctx := chi.RouteContext(req.raw.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}
