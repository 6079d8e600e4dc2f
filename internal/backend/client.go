// Package backend is the typed client for the external storefront REST API.
// It owns the wire contract only: authentication, catalog, and order
// endpoints. All business rules live in the domain packages.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token for authenticated requests. An empty
// token means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// AnonymousTokenSource always returns an empty token.
var AnonymousTokenSource = TokenSourceFunc(func(context.Context) (string, error) {
	return "", nil
})

// Client talks to the storefront backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The transport chain
// (request IDs, tracing) is applied on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. Default is 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a Client for the backend at baseURL (with or without a
// trailing slash; the "/api" prefix is appended here). Requests carry the
// token from tokens when one is available.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = AnonymousTokenSource
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = otelhttp.NewTransport(&requestIDTransport{next: base})
	return c
}

// do performs one round trip: marshal body, attach the bearer token, send,
// map non-2xx responses to *APIError, and decode the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return errors.Wrap(err, "read token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
