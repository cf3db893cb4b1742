// Package middleware provides the small HTTP middleware set used by the
// converter's API routes.
package middleware

import "net/http"

// Middleware wraps an http.HandlerFunc with extra behavior.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain composes middlewares onion-style: Chain(m1, m2)(h) runs m1 outermost,
// then m2, then h. With no middlewares it returns the handler unchanged.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
