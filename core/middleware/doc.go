// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - Auth: Verifies bearer tokens and resolves the authenticated account id.
//     Token issuance lives in a separate auth service; this middleware only
//     validates signatures and checks that the account still exists.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// These middleware components are designed to be registered globally or
// per-route group in the main application setup.
package middleware
