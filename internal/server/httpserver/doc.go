// Package httpserver provides the span intake HTTP server for the
// TraceMesh agent.
//
// Instrumented processes without an in-process tracer talk to the
// agent through this API:
//
//   - POST /v1/spans starts a span (optionally as a child)
//   - PUT/DELETE /v1/spans/{id}/tags and /metrics mutate attributes
//   - POST /v1/spans/{id}/finish closes the span for export
//
// The middleware chain is Recover -> RequestID -> AccessLog; the
// intake listens on loopback and carries no authentication of its own.
//
// @req RQ-0401
// @design DS-0401
package httpserver
