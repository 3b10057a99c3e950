package client_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/adamwoolhether/brckt/client"
	"github.com/adamwoolhether/brckt/client/throttle"
)

type payload struct {
	Body string `json:"body"`
}

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func okServer(t *testing.T, check func(r *http.Request)) string {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	return ts.URL
}

func TestBuild_OptionValidation(t *testing.T) {
	testCases := map[string]struct {
		opt    client.Option
		expErr error
		fails  bool
	}{
		"nilClient":        {opt: client.WithClient(nil), fails: true},
		"nilTransport":     {opt: client.WithTransport(nil), fails: true},
		"nilTracer":        {opt: client.WithTracer(nil), fails: true},
		"negativeTimeout":  {opt: client.WithTimeout(-1), fails: true},
		"zeroTimeout":      {opt: client.WithTimeout(0)},
		"zeroThrottleRPS":  {opt: client.WithThrottle(0, 10), fails: true, expErr: throttle.ErrMustNotBeZero},
		"validThrottle":    {opt: client.WithThrottle(10, 10)},
		"jsonNumber":       {opt: client.WithJSONNumber()},
		"noFollowRedirect": {opt: client.WithNoFollowRedirects()},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := client.Build(tc.opt)
			if tc.fails != (err != nil) {
				t.Fatalf("exp failure %v, got err: %v", tc.fails, err)
			}
			if tc.expErr != nil && !errors.Is(err, tc.expErr) {
				t.Errorf("exp err %v, got: %v", tc.expErr, err)
			}
		})
	}
}

func TestClient_WithUserAgentAndThrottle(t *testing.T) {
	expectedUA := "ThrottledAgent/1.0"

	testURL := okServer(t, func(r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != expectedUA {
			t.Errorf("expected User-Agent %q, got %q", expectedUA, ua)
		}
	})

	// Option order must not matter.
	orders := [][]client.Option{
		{client.WithThrottle(100, 10), client.WithUserAgent(expectedUA)},
		{client.WithUserAgent(expectedUA), client.WithThrottle(100, 10)},
	}

	for i, opts := range orders {
		c, err := client.Build(opts...)
		if err != nil {
			t.Fatalf("order %d: failed to create client: %v", i, err)
		}

		if _, err := c.Send(t.Context(), http.MethodGet, testURL, nil, nil); err != nil {
			t.Errorf("order %d: expected no error, got: %v", i, err)
		}
	}
}

func TestClient_WithClientAndWithTransport(t *testing.T) {
	// WithTransport must always win over the provided client's transport.
	var providedCalled, explicitCalled bool
	providedTransport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		providedCalled = true
		return http.DefaultTransport.RoundTrip(r)
	})
	explicitTransport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		explicitCalled = true
		return http.DefaultTransport.RoundTrip(r)
	})

	testURL := okServer(t, nil)

	c, err := client.Build(
		client.WithClient(&http.Client{Transport: providedTransport}),
		client.WithTransport(explicitTransport),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := c.Send(t.Context(), http.MethodGet, testURL, nil, nil); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if providedCalled {
		t.Error("provided client's transport should not have been called")
	}
	if !explicitCalled {
		t.Error("WithTransport's transport should have been called")
	}
}

func TestClient_WithClientAndWithTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	// WithTimeout must win over WithClient's timeout.
	c, err := client.Build(
		client.WithTimeout(5*time.Second),
		client.WithClient(&http.Client{Timeout: time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := c.Send(t.Context(), http.MethodGet, ts.URL, nil, nil); err != nil {
		t.Errorf("expected no error (WithTimeout should win), got: %v", err)
	}
}

func TestClient_WithTimeoutExceeded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := client.Build(client.WithTimeout(10 * time.Millisecond))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = c.Send(t.Context(), http.MethodGet, ts.URL, nil, nil)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if _, ok := client.StatusCode(err); ok {
		t.Errorf("timeout must not be reported as a status error: %v", err)
	}
}

func TestClient_WithNoFollowRedirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/redirect" {
			http.Redirect(w, r, "/target", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	testCases := map[string]struct {
		opts      []client.Option
		expStatus int
	}{
		"follows":  {expStatus: http.StatusOK},
		"noFollow": {opts: []client.Option{client.WithNoFollowRedirects()}, expStatus: http.StatusFound},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, err := client.Build(tc.opts...)
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			_, err = c.Send(t.Context(), http.MethodGet, ts.URL+"/redirect", nil, nil)
			if tc.expStatus == http.StatusOK {
				if err != nil {
					t.Errorf("expected redirect to be followed, got: %v", err)
				}
				return
			}

			if code, ok := client.StatusCode(err); !ok || code != tc.expStatus {
				t.Errorf("exp status %d, got %d (%v)", tc.expStatus, code, err)
			}
		})
	}
}

func TestClient_ErrorBodyCapped(t *testing.T) {
	largeBody := bytes.Repeat([]byte("Y"), 8192)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(largeBody)
	}))
	defer ts.Close()

	c, err := client.Build()
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	_, err = c.Send(t.Context(), http.MethodGet, ts.URL, nil, nil)

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *UnexpectedStatusError, got: %T: %v", err, err)
	}

	const maxErrBodySize = 4 << 10
	if len(statusErr.Body) != maxErrBodySize {
		t.Errorf("expected body capped to %d bytes, got %d", maxErrBodySize, len(statusErr.Body))
	}
	if statusErr.Value != nil {
		t.Errorf("non-JSON body must leave Value nil, got %v", statusErr.Value)
	}
}

func TestRequest(t *testing.T) {
	testCases := map[string]struct {
		method         string
		payload        *payload
		headers        map[string]string
		expContentType string
	}{
		"basic": {
			method:         http.MethodGet,
			expContentType: "application/json",
		},
		"withPayload": {
			method:         http.MethodPost,
			payload:        &payload{Body: "hey there"},
			expContentType: "application/json",
		},
		"fixedHeadersOverrideContentType": {
			method: http.MethodPost,
			headers: map[string]string{
				"Content-type":  "application/vnd.api+json",
				"Authorization": "SSWS token",
			},
			expContentType: "application/vnd.api+json",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			u, err := url.Parse("https://localhost:8888/users/4")
			if err != nil {
				t.Fatal(err)
			}

			var opts []client.RequestOption
			if tc.payload != nil {
				opts = append(opts, client.WithPayload(*tc.payload))
			}
			if tc.headers != nil {
				opts = append(opts, client.WithHeaders(tc.headers))
			}

			req, err := client.Request(t.Context(), u, tc.method, opts...)
			if err != nil {
				t.Fatalf("create request exp nil err; got: %v", err)
			}

			if req.Method != tc.method {
				t.Errorf("exp method %s, got %s", tc.method, req.Method)
			}

			if tc.payload != nil {
				var got payload
				if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
					t.Fatalf("reading req body: %v", err)
				}
				if got != *tc.payload {
					t.Errorf("exp req body: %v, got: %v", *tc.payload, got)
				}
			}

			if got := req.Header.Get("Content-Type"); got != tc.expContentType {
				t.Errorf("exp content type %q, got %q", tc.expContentType, got)
			}
			if vals := req.Header.Values("Content-Type"); len(vals) != 1 {
				t.Errorf("exp a single Content-Type value, got %v", vals)
			}

			for k, v := range tc.headers {
				if got := req.Header.Get(k); got != v {
					t.Errorf("header[%s]: exp %q, got %q", k, v, got)
				}
			}
		})
	}
}
