// Package handler is the HTTP layer that sits right after the router.
//
// It binds and validates requests through the validation package, hands
// GraphQL documents to the executable schema, and serves the supporting
// endpoints (playground, SDL download, health).
package handler
