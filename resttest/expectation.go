package resttest

import (
	"encoding/json"
	"fmt"
)

// Expectation is a canned reply for one method and request URI.
// Configure it before the matching request is sent.
type Expectation struct {
	method string
	uri    string

	hasBody bool
	body    any

	times int
	hits  int

	status int
	reply  any
}

// WithBody makes the expectation match only requests whose JSON body
// equals body once both are decoded into plain JSON values.
func (e *Expectation) WithBody(body any) *Expectation {
	b, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("resttest: encoding expected body: %v", err))
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		panic(fmt.Sprintf("resttest: decoding expected body: %v", err))
	}

	e.hasBody = true
	e.body = v

	return e
}

// Times lets the expectation match n requests.
func (e *Expectation) Times(n int) *Expectation {
	e.times = n
	return e
}

// Reply sets the status and the JSON-encoded body sent back. A nil
// body sends no body.
func (e *Expectation) Reply(status int, body any) *Expectation {
	e.status = status
	e.reply = body
	return e
}
