// Package service contains the operations the GraphQL resolvers call.
//
// It sits between the resolver and repository layers. Failed store
// operations are logged with the request-scoped logger and the typed
// *errs.Error is returned unchanged so it reaches the GraphQL response.
package service
