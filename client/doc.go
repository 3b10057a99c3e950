// Package client provides the JSON transport used by the REST helpers,
// built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//		client.WithThrottle(20, 5),
//	)
//
// # Sending Requests
//
// [Client.Send] takes an absolute URI, a fixed header set and an optional
// body. The body is JSON-encoded and the response is JSON-decoded into an
// untyped value:
//
//	v, err := c.Send(ctx, http.MethodGet, "https://api.example.com/v1/users/4",
//		map[string]string{"Authorization": "SSWS token"}, nil)
//
// Any status in 200-299 is success. Other statuses come back as an
// [*UnexpectedStatusError] holding both the raw and decoded body:
//
//	var se *client.UnexpectedStatusError
//	if errors.As(err, &se) {
//		fmt.Println(se.StatusCode, se.Value)
//	}
//
// Errors returned before any response arrives (dial, DNS, timeout) are not
// status errors and are passed back wrapped.
//
// # Request Descriptors
//
// [Request] builds the *http.Request that [Client.Send] executes: a
// JSON-encoded [WithPayload] body, `application/json` Content-Type, and
// the fixed [WithHeaders] set applied last.
//
// # Tracing
//
// [WithTracer] starts a client span per [Client.Send] call and injects
// W3C trace context headers into the outgoing request.
package client
