package rest

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"

	"github.com/adamwoolhether/brckt/client"
)

// Sender is the transport a [Client] delegates every request to.
// uri is absolute. body is nil when the request carries none.
// Implementations return the decoded response body on success.
type Sender interface {
	Send(ctx context.Context, method, uri string, headers map[string]string, body any) (any, error)
}

// Config is the immutable state shared by every function a [Client]
// hands out.
type Config struct {
	BaseURL string            `json:"base_url" validate:"required,url"`
	Headers map[string]string `json:"headers"  validate:"dive,keys,required,endkeys"`
}

// Validate checks c against its declared tags.
func (c Config) Validate() error {
	return checkStruct(c)
}

// normalizeBaseURL appends a slash unless baseURL already ends in one.
func normalizeBaseURL(baseURL string) string {
	if strings.HasSuffix(baseURL, "/") {
		return baseURL
	}

	return baseURL + "/"
}

// clone returns a copy of c whose header map is not shared.
func (c Config) clone() Config {
	return Config{
		BaseURL: c.BaseURL,
		Headers: maps.Clone(c.Headers),
	}
}

// Option is a functional option for [New].
type Option func(*options) error

type options struct {
	sender     Sender
	clientOpts []client.Option
}

// WithSender replaces the default [client.Client] transport.
func WithSender(s Sender) Option {
	return func(o *options) error {
		if s == nil {
			return errors.New("sender must not be nil")
		}
		o.sender = s
		return nil
	}
}

// WithClientOptions configures the default [client.Client] transport.
// It has no effect when combined with [WithSender].
func WithClientOptions(opts ...client.Option) Option {
	return func(o *options) error {
		o.clientOpts = append(o.clientOpts, opts...)
		return nil
	}
}

// WithLogger sets the logger used by the default [client.Client]
// transport. It has no effect when combined with [WithSender].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.clientOpts = append(o.clientOpts, client.WithLogger(logger))
		return nil
	}
}
