// Package errs define custom error types and utilities.
//
// Two shapes live here:
//   - HTTPError: the JSON body written by the global echo error handler for
//     failures that happen before a GraphQL document is executed
//     (malformed request, unknown route, panics).
//   - Error: a typed store/service failure carrying a Kind, surfaced to
//     GraphQL clients through `errors[].extensions.code`.
package errs
