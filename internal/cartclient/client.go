// Package cartclient calls the storefront's add-to-cart endpoint and turns
// the outcome into a user-facing notice.
package cartclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
)

const failureMessage = "Error adding to cart"

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (n Notice) OK() bool { return n.Kind == Success }

type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. to add a cookie jar.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client for the storefront at baseURL. The default HTTP
// client has no timeout; callers bound requests with their context.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("cartclient: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("cartclient: base url %q must be http or https", baseURL)
	}
	c := &Client{base: u, http: &http.Client{}, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// AddToCart sends one add-to-cart request. Any 2xx answer is a success;
// every other status and any transport error yields the generic failure
// notice. Nothing is retried.
func (c *Client) AddToCart(ctx context.Context, productID uint, productName string) Notice {
	endpoint := c.base.JoinPath("add_to_cart", strconv.FormatUint(uint64(productID), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return c.fail(ctx, productID, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, productID, err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.fail(ctx, productID, fmt.Errorf("unexpected status %d", res.StatusCode))
	}
	return Notice{Kind: Success, Message: `"` + productName + `" added to cart!`}
}

func (c *Client) fail(ctx context.Context, productID uint, err error) Notice {
	c.log.LogAttrs(ctx, slog.LevelWarn, "add_to_cart_failed",
		slog.Uint64("product_id", uint64(productID)),
		slog.Any("err", err),
	)
	return Notice{Kind: Failure, Message: failureMessage}
}
