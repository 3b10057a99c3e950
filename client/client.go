package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/adamwoolhether/brckt/client/throttle"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/adamwoolhether/brckt/client"

// Client wraps the std-lib *http.Client
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c          *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	useJSONNum bool
}

func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	client.useJSONNum = opts.useJSONNum

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Send issues a JSON request to uri carrying the given headers and,
// when body is non-nil, the JSON-encoded body. A status in 200-299
// yields the decoded response body, which is nil for an empty body.
// Any other status yields an [*UnexpectedStatusError]; failures
// before a response arrives are returned wrapped.
func (c *Client) Send(ctx context.Context, method, uri string, headers map[string]string, body any) (any, error) {
	reqURL, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing uri: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, "client.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", reqURL.Redacted()),
	)

	reqOpts := []RequestOption{WithHeaders(headers)}
	if body != nil {
		reqOpts = append(reqOpts, WithPayload(body))
	}

	req, err := Request(ctx, reqURL, method, reqOpts...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()

	var value any
	decodeFn := func(resp *http.Response) error {
		v, err := decodeJSON(resp.Body, c.useJSONNum)
		if err != nil {
			return fmt.Errorf("decoding body: %w", err)
		}
		value = v

		return nil
	}

	status, err := c.exec(req, decodeFn)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.logger.Debug("request completed", "method", method, "path", reqURL.Path, "statusCode", status, "since", time.Since(start).String())

	return value, nil
}

// exec runs the request and injected function on success after validating the status code.
// The returned status is zero when no response was received.
func (c *Client) exec(req *http.Request, fn execFn) (int, error) {
	resp, err := c.c.Do(req)
	if err != nil {
		return 0, fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if !IsSuccess(resp.StatusCode) {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		sentinel := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			sentinel = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
		}

		// Value stays nil for bodies that are not JSON.
		value, _ := decodeJSON(bytes.NewReader(b), c.useJSONNum)

		return resp.StatusCode, &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Value:      value,
			Err:        sentinel,
		}
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return resp.StatusCode, fmt.Errorf("exec fn: %w", err)
	}

	return resp.StatusCode, nil
}

// decodeJSON decodes a single JSON value of any shape from r.
// An empty body decodes to nil.
func decodeJSON(r io.Reader, useNumber bool) (any, error) {
	d := json.NewDecoder(r)
	if useNumber {
		d.UseNumber()
	}

	var v any
	if err := d.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	return v, nil
}

// Request instantiates an *http.Request with the provided information.
// Content-Type is `application/json` unless overridden via WithHeaders.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	var payload bytes.Buffer
	if settings.body != nil {
		if err := json.NewEncoder(&payload).Encode(settings.body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), &payload)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range settings.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
