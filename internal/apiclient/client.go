// Package apiclient talks to the remote document and Q&A backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodyBytes = 10 << 20

// ErrMalformedResponse is wrapped by Decode when a body fails to parse or validate.
var ErrMalformedResponse = errors.New("malformed backend response")

type requestIDKey struct{}

// ContextWithRequestID stores the inbound request id so outgoing calls can forward it.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Request describes one backend call.
type Request struct {
	// Endpoint is a stable label for metrics, e.g. "documents.search".
	Endpoint    string
	Method      string
	Path        string
	Query       url.Values
	Token       string
	Body        io.Reader
	ContentType string
}

// Response is a fully read backend response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is safe for concurrent use. It keeps no cookie jar, so no state leaks between users.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	validate *validator.Validate

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client rooted at baseURL. Metrics are registered on reg when it is non-nil.
func New(baseURL string, timeout time.Duration, reg prometheus.Registerer, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_requests_total",
				Help: "Total number of requests sent to the document backend.",
			},
			[]string{"endpoint", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_request_duration_seconds",
				Help:    "Latency of requests sent to the document backend.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),
	}
	for _, opt := range opts {
		opt(c)
	}

	if reg != nil {
		if err := reg.Register(c.requestCount); err != nil {
			return nil, err
		}
		if err := reg.Register(c.requestDuration); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends the request and reads the whole body. Non-2xx statuses are not errors here.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + r.Path
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), r.Body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.requestDuration.WithLabelValues(r.Endpoint, r.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.requestCount.WithLabelValues(r.Endpoint, r.Method, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()
	c.requestCount.WithLabelValues(r.Endpoint, r.Method, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// JSONBody encodes v for use as a request body.
func JSONBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Decode parses body into T and validates it. Types with a Validate() error
// method get that check too. Any failure wraps ErrMalformedResponse.
func Decode[T any](c *Client, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := c.validate.Struct(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if v, ok := any(&out).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return out, nil
}
