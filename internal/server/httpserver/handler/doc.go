// Package handler provides HTTP request handlers for the TraceMesh
// span intake API.
//
// Handlers translate HTTP requests into tracer service operations and
// wrap every response in the standard envelope (code, message,
// request_id, timestamp, data).
//
// @req RQ-0401
// @design DS-0401
package handler
