package resttest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceHeader carries the trace id of the request back to the caller.
const TraceHeader = "X-Trace-Id"

// Recorded is a request as seen by the [Server].
type Recorded struct {
	TraceID string
	Method  string
	URI     string
	Header  http.Header
	Body    any
}

// Server is an httptest.Server answering from registered expectations.
type Server struct {
	t       testing.TB
	srv     *httptest.Server
	headers map[string]string

	mu           sync.Mutex
	expectations []*Expectation
	recorded     []Recorded
}

// Option is a functional option for [NewServer].
type Option func(*Server)

// WithRequiredHeaders rejects, and reports to t, any request that does
// not carry every header in headers with the same value.
func WithRequiredHeaders(headers map[string]string) Option {
	return func(s *Server) {
		s.headers = headers
	}
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := Server{t: t}
	for _, opt := range opts {
		opt(&s)
	}

	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)

	return &s
}

// URL returns the server's base URL, with no trailing slash.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the server down. Later requests fail at the transport.
func (s *Server) Close() {
	s.srv.Close()
}

// Expect registers a reply for method and uri. uri is matched against
// the request URI, query included. By default the expectation is
// consumed by a single request.
func (s *Server) Expect(method, uri string) *Expectation {
	e := Expectation{
		method: method,
		uri:    uri,
		times:  1,
		status: http.StatusOK,
	}

	s.mu.Lock()
	s.expectations = append(s.expectations, &e)
	s.mu.Unlock()

	return &e
}

// Requests returns every request received so far, in arrival order.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Recorded, len(s.recorded))
	copy(out, s.recorded)

	return out
}

// Pending lists expectations that have not been fully consumed.
func (s *Server) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, e := range s.expectations {
		if e.hits < e.times {
			out = append(out, fmt.Sprintf("%s %s (%d/%d)", e.method, e.uri, e.hits, e.times))
		}
	}

	return out
}

// AssertDone fails the test if any expectation is still pending.
func (s *Server) AssertDone() {
	s.t.Helper()

	for _, p := range s.Pending() {
		s.t.Errorf("expectation not met: %s", p)
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	traceID := traceIDFrom(r)
	w.Header().Set(TraceHeader, traceID)

	body, err := decodeBody(r.Body)
	if err != nil {
		s.t.Errorf("%s %s: decoding body: %v", r.Method, r.RequestURI, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.recorded = append(s.recorded, Recorded{
		TraceID: traceID,
		Method:  r.Method,
		URI:     r.RequestURI,
		Header:  r.Header.Clone(),
		Body:    body,
	})
	e := s.match(r.Method, r.RequestURI, body)
	s.mu.Unlock()

	for k, v := range s.headers {
		if got := r.Header.Get(k); got != v {
			s.t.Errorf("%s %s: header[%s] exp %q, got %q", r.Method, r.RequestURI, k, v, got)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing header " + k})
			return
		}
	}

	if e == nil {
		s.t.Errorf("unexpected request: %s %s", r.Method, r.RequestURI)
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "no expectation"})
		return
	}

	writeJSON(w, e.status, e.reply)
}

// match consumes and returns the first open expectation for the
// request. Callers must hold s.mu.
func (s *Server) match(method, uri string, body any) *Expectation {
	for _, e := range s.expectations {
		if e.hits >= e.times || e.method != method || e.uri != uri {
			continue
		}
		if e.hasBody && !cmp.Equal(e.body, body) {
			s.t.Logf("%s %s: body mismatch (-exp +got):\n%s", method, uri, cmp.Diff(e.body, body))
			continue
		}

		e.hits++
		return e
	}

	return nil
}

func traceIDFrom(r *http.Request) string {
	ctx := propagation.TraceContext{}.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	sc := trace.SpanContextFromContext(ctx)
	if !sc.TraceID().IsValid() {
		return uuid.New().String()
	}

	return sc.TraceID().String()
}

// decodeBody reads a JSON body of any shape. An empty body is nil.
func decodeBody(r io.Reader) (any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
