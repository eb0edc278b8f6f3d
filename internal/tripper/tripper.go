// Package tripper composes http.RoundTripper middleware around a transport.
package tripper

import "net/http"

// RoundTripperFunc wraps a function in a RoundTripper interface similar to HandlerFunc
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(req).
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Constructor wraps a RoundTripper with another.
type Constructor func(http.RoundTripper) http.RoundTripper

// Chain is an immutable list of constructors applied in order: the first
// constructor sees the request first and the response last.
type Chain struct {
	constructors []Constructor
}

// NewChain memorizes constructors; they are only called by Then.
func NewChain(constructors ...Constructor) Chain {
	return Chain{append([]Constructor(nil), constructors...)}
}

// Then wraps h so that NewChain(m1, m2).Then(h) is m1(m2(h)).
// A nil h is http.DefaultTransport.
func (c Chain) Then(h http.RoundTripper) http.RoundTripper {
	if h == nil {
		h = http.DefaultTransport
	}
	for i := len(c.constructors) - 1; i >= 0; i-- {
		h = c.constructors[i](h)
	}
	return h
}

// Append returns a new chain with constructors added closest to the transport.
func (c Chain) Append(constructors ...Constructor) Chain {
	newCons := make([]Constructor, 0, len(c.constructors)+len(constructors))
	newCons = append(newCons, c.constructors...)
	newCons = append(newCons, constructors...)
	return Chain{newCons}
}

// Len returns the number of constructors.
func (c Chain) Len() int {
	return len(c.constructors)
}
