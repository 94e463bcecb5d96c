package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/hvpham-yorku/StockSage-AI/identity"
	"github.com/hvpham-yorku/StockSage-AI/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 20
	tracerName     = "github.com/hvpham-yorku/StockSage-AI/api"
)

// A TokenSource hands out ID tokens for the signed in principal.
// It returns "" and a nil error when nobody is signed in.
//
// *identity.Provider is the TokenSource of a browser session.
type TokenSource interface {
	CurrentToken(ctx context.Context, forceRefresh bool) (string, error)
}

var _ TokenSource = (*identity.Provider)(nil)

// A Request describes one call to the backend.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header

	// Route is the templated path reported in metrics and spans, e.g., /api/stocks/{symbol}.
	// Path is used when Route is empty.
	Route string
}

func (r Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Path
}

// Client calls the StockSage backend.
type Client struct {
	base     *url.URL
	http     *http.Client
	logger   logger.Logger
	metrics  *metrics
	origin   string
	timeout  time.Duration
	tokens   TokenSource
	tracer   trace.Tracer
	validate *validator.Validate
}

// New constructs a Client calling the backend at base.
func New(base *url.URL, opts ...ClientOpt) *Client {
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		base:     &u,
		http:     &http.Client{},
		timeout:  defaultTimeout,
		tracer:   otel.Tracer(tracerName),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.metrics == nil {
		c.metrics = defaultMetrics()
	}

	return c
}

// With returns a copy of c that authenticates with tokens.
func (c *Client) With(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// BaseURL returns the backend's base URL.
func (c *Client) BaseURL() string { return c.base.String() }

// Do executes req, decoding a JSON response into out.
//
// A 204 or empty response leaves out untouched.
// out may be nil to discard the response.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	_, err := c.do(ctx, req, out)
	return err
}

// fetch runs req, returning the payload the backend answered with.
// An answer without a body is ErrInvalidPayload.
func fetch[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	v, err := fetchOptional[T](ctx, c, req)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, fmt.Errorf("%w: %s %s answered with no body", ErrInvalidPayload, req.Method, req.Path)
	}

	return v, nil
}

// fetchOptional runs req, returning nil when the backend answered without a body.
func fetchOptional[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	v := new(T)
	decoded, err := c.do(ctx, req, v)
	if err != nil {
		return nil, err
	}

	if !decoded {
		return nil, nil
	}

	return v, nil
}

// do is Do, also reporting whether a response body was decoded into out.
func (c *Client) do(ctx context.Context, req Request, out any) (decoded bool, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "api "+req.Method+" "+req.route(), trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.route", req.route()),
		),
	)

	status := 0
	defer func() {
		c.metrics.observe(req.Method, req.route(), status, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.token(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return false, fmt.Errorf("%w after %s: waiting for ID token: %s %s", ErrTimeout, c.timeout, req.Method, req.Path)
	}
	if err != nil {
		return false, err
	}

	if token == "" && protected(req.Path) {
		return false, fmt.Errorf("%w: %s %s", ErrUnauthenticated, req.Method, req.Path)
	}

	body, err := c.encode(req.Body)
	if err != nil {
		return false, err
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.url(req), body)
	if err != nil {
		return false, fmt.Errorf("%w: building request: %s", ErrInvalidPayload, err)
	}

	for k, vals := range req.Header {
		for _, v := range vals {
			hreq.Header.Add(k, v)
		}
	}

	if token != "" {
		hreq.Header.Set("Authorization", "Bearer "+token)
	}

	if body != nil && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", "application/json")
	}

	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "application/json")
	}

	if c.origin != "" && hreq.Header.Get("Origin") == "" {
		hreq.Header.Set("Origin", c.origin)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(hreq.Header))

	res, err := c.http.Do(hreq)
	if err != nil {
		return false, c.transportErr(hreq, err)
	}
	defer res.Body.Close()

	status = res.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status > 299 {
		return false, readHTTPError(res)
	}

	if status == http.StatusNoContent {
		return false, nil
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return false, c.transportErr(hreq, err)
	}

	if len(bytes.TrimSpace(b)) == 0 || out == nil {
		return false, nil
	}

	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("%w: decoding %s %s: %s", ErrInvalidPayload, req.Method, req.Path, err)
	}

	if err := c.check(out); err != nil {
		return false, fmt.Errorf("%w: %s %s response: %s", ErrInvalidPayload, req.Method, req.Path, err)
	}

	return true, nil
}

// token fetches a fresh ID token.
// An expired credential counts as no token; the TokenSource has already signed out.
func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}

	token, err := c.tokens.CurrentToken(ctx, true)
	if errors.Is(err, identity.ErrTokenExpired) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting ID token: %w", err)
	}

	return token, nil
}

func (c *Client) encode(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}

	if err := c.check(body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}

	return bytes.NewReader(b), nil
}

// url joins req onto the base URL; req.Path is already escaped.
func (c *Client) url(req Request) string {
	s := c.base.String() + req.Path
	if len(req.Query) > 0 {
		s += "?" + req.Query.Encode()
	}
	return s
}

func (c *Client) transportErr(hreq *http.Request, err error) error {
	var nerr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return fmt.Errorf("%w after %s: %s %s", ErrTimeout, c.timeout, hreq.Method, hreq.URL.Path)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", hreq.Method, hreq.URL.Path, err)
	}

	terr := &TransportError{
		Method: hreq.Method,
		URL:    hreq.URL.Redacted(),
		Hint:   connHint(err, c.base.String()),
		Err:    err,
	}

	if c.logger != nil && terr.Hint != "" {
		c.logger.Error(terr.Hint, &logger.LogContext{Error: err, Data: map[string]any{"url": terr.URL}})
	}

	return terr
}

// protected asserts whether path must never be called without a token.
func protected(path string) bool {
	if strings.HasPrefix(path, "/api/portfolios") {
		return true
	}

	return strings.Contains(path, "/api/auth/") && !strings.HasSuffix(path, "/register")
}

// readHTTPError builds an HTTPError from a non-2xx response,
// preferring the JSON detail, then message, then the raw JSON, then the status text.
func readHTTPError(res *http.Response) error {
	herr := &HTTPError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	if herr.Message == "" {
		herr.Message = res.Status
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return herr
	}

	if !json.Valid(b) {
		return herr
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(b, &payload); err != nil {
		herr.Message = rawMessage(b)
		return herr
	}

	for _, key := range []string{"detail", "message"} {
		if msg := rawMessage(payload[key]); msg != "" {
			herr.Message = msg
			return herr
		}
	}

	herr.Message = rawMessage(b)
	return herr
}

// rawMessage reads a JSON value as a message: strings as is, anything else as compact JSON.
func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
