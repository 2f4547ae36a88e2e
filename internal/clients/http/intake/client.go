// Package intake posts orders to intake endpoints the way a storefront page
// would, including the cross-origin visibility rules of a browser fetch.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrCrossOriginBlocked is returned when a cross-origin response does not
// allow the storefront origin to read it.
var ErrCrossOriginBlocked = errors.New("intake: cross-origin response blocked")

const maxDrain = 64 << 10

// Client wraps an instrumented http.Client with the storefront origin.
type Client struct {
	http   *http.Client
	origin string
}

// Response is what the caller may observe. Opaque responses carry no status.
type Response struct {
	StatusCode int
	Opaque     bool
}

// PostOption configures Post behavior.
type PostOption func(*postOptions)

type postOptions struct {
	idempotencyKey string
	noCORS         bool
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) PostOption {
	return func(opts *postOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// WithNoCORS sends a cross-origin request without asking to read the response.
func WithNoCORS() PostOption {
	return func(opts *postOptions) {
		opts.noCORS = true
	}
}

// NewClient builds a client for pages served from origin. An empty origin
// treats every URL as same-origin. A nil httpClient gets an otelhttp transport
// and no client-wide timeout.
func NewClient(origin string, httpClient *http.Client) (*Client, error) {
	normalized := ""
	if strings.TrimSpace(origin) != "" {
		var err error
		normalized, err = originOf(origin)
		if err != nil {
			return nil, fmt.Errorf("parse storefront origin: %w", err)
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{http: httpClient, origin: normalized}, nil
}

// Origin returns the normalized storefront origin.
func (c *Client) Origin() string {
	return c.origin
}

// Post sends body as JSON to target.
func (c *Client) Post(ctx context.Context, target string, body []byte, optFns ...PostOption) (Response, error) {
	if c == nil || c.http == nil {
		return Response{}, errors.New("intake client not configured")
	}
	var opts postOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	crossOrigin, err := c.isCrossOrigin(target)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build intake request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	if crossOrigin {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("call intake endpoint: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	switch {
	case !crossOrigin:
		return Response{StatusCode: resp.StatusCode}, nil
	case opts.noCORS:
		return Response{Opaque: true}, nil
	case allowsOrigin(resp.Header.Get("Access-Control-Allow-Origin"), c.origin):
		return Response{StatusCode: resp.StatusCode}, nil
	default:
		return Response{}, fmt.Errorf("%w: %s", ErrCrossOriginBlocked, target)
	}
}

func (c *Client) isCrossOrigin(target string) (bool, error) {
	if c.origin == "" {
		return false, nil
	}
	o, err := originOf(target)
	if err != nil {
		return false, fmt.Errorf("parse intake url: %w", err)
	}
	return o != c.origin, nil
}

func allowsOrigin(header, origin string) bool {
	header = strings.TrimSpace(header)
	return header == "*" || strings.EqualFold(header, origin)
}

func originOf(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute url", raw)
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), nil
}
