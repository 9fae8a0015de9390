// Package middleware stores the global middleware chain.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, New Relic tracing, CORS and panic
// recovery, and translate any returned error into the JSON error body.
package middleware
