// Package brckt exposes the REST client constructor.
package brckt

import (
	"github.com/adamwoolhether/brckt/rest"
)

// New instantiates a *rest.Client bound to baseURL, sending headers on
// every request. If not specified, a default client.Client is used as
// the transport.
func New(baseURL string, headers map[string]string, opts ...rest.Option) (*rest.Client, error) {
	return rest.New(baseURL, headers, opts...)
}
