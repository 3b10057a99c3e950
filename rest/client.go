package rest

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/adamwoolhether/brckt/client"
)

// Client derives resource paths from names and ids and sends them,
// relative to a fixed base URL, with a fixed header set.
// A Client is safe for concurrent use; nothing it holds changes after [New].
type Client struct {
	cfg    Config
	sender Sender
}

// New builds a Client against baseURL. A trailing slash is added to
// baseURL when missing. headers are sent on every request and are
// copied, so later changes to the map have no effect.
func New(baseURL string, headers map[string]string, optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying rest option: %w", err)
		}
	}

	cfg := Config{
		BaseURL: baseURL,
		Headers: maps.Clone(headers),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.BaseURL = normalizeBaseURL(cfg.BaseURL)

	sender := opts.sender
	if sender == nil {
		hc, err := client.Build(opts.clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("building transport: %w", err)
		}
		sender = hc
	}

	c := Client{
		cfg:    cfg,
		sender: sender,
	}

	return &c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// URL returns the absolute URL for a relative path.
func (c *Client) URL(path string) string {
	return c.cfg.BaseURL + path
}

// Get issues a GET for the literal path.
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

// Post issues a POST for the literal path with body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put issues a PUT for the literal path with body as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE for the literal path.
func (c *Client) Delete(ctx context.Context, path string) (any, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

// GetObject fetches the object addressed by tokens, laid out as
// described by [ResourcePath].
func (c *Client) GetObject(ctx context.Context, tokens ...string) (any, error) {
	return restify(c.verb(http.MethodGet))(ctx, nil, tokens...)
}

// ListObjects fetches a collection. args are read by [ParseListArgs].
func (c *Client) ListObjects(ctx context.Context, args ...string) (any, error) {
	return c.List(ctx, ParseListArgs(args...))
}

// List fetches the collection described by lr.
func (c *Client) List(ctx context.Context, lr ListRequest) (any, error) {
	p, err := lr.Path()
	if err != nil {
		return nil, fmt.Errorf("building list path: %w", err)
	}

	return c.Get(ctx, p)
}

// CreateObject POSTs body to the path addressed by tokens.
func (c *Client) CreateObject(ctx context.Context, body any, tokens ...string) (any, error) {
	return restify(c.verb(http.MethodPost))(ctx, body, tokens...)
}

// UpdateObject PUTs body to the path addressed by tokens.
func (c *Client) UpdateObject(ctx context.Context, body any, tokens ...string) (any, error) {
	return restify(c.verb(http.MethodPut))(ctx, body, tokens...)
}

// RemoveObject DELETEs the object addressed by tokens.
func (c *Client) RemoveObject(ctx context.Context, tokens ...string) (any, error) {
	return restify(c.verb(http.MethodDelete))(ctx, nil, tokens...)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (any, error) {
	return c.sender.Send(ctx, method, c.URL(path), maps.Clone(c.cfg.Headers), body)
}
