// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. An empty key disables the check.
//   - rayid: a unique request ID (RayID) for every incoming request, stored in the
//     context locals and echoed in the response headers for tracing.
//
// Both are registered globally in the serve command.
package middleware
