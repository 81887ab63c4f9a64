// Package handler provides HTTP request handlers for the TraceMesh
// span intake API.
package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format.
//
// @design DS-0401
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// StartSpanRequest is the request body for POST /v1/spans.
//
// @design DS-0401
type StartSpanRequest struct {
	Name     string `json:"name"`
	Service  string `json:"service,omitempty"`
	Resource string `json:"resource,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// StartSpanResponse is the response body for POST /v1/spans.
//
// @design DS-0401
type StartSpanResponse struct {
	TraceID string `json:"trace_id"`
	SpanID  string `json:"span_id"`
	Sampled bool   `json:"sampled"`
}

// SpanSnapshot is the response body for GET /v1/spans/{id}.
//
// @design DS-0401
type SpanSnapshot struct {
	TraceID  string             `json:"trace_id"`
	SpanID   string             `json:"span_id"`
	ParentID string             `json:"parent_id,omitempty"`
	Name     string             `json:"name"`
	Service  string             `json:"service"`
	Resource string             `json:"resource,omitempty"`
	Start    int64              `json:"start"`
	Sampled  bool               `json:"sampled"`
	Tags     map[string]string  `json:"tags,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// SetTagRequest is the request body for PUT /v1/spans/{id}/tags.
//
// @design DS-0401
type SetTagRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SetMetricRequest is the request body for PUT /v1/spans/{id}/metrics.
//
// @design DS-0401
type SetMetricRequest struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// StatusResponse is the response body for GET /v1/status.
//
// @design DS-0401
type StatusResponse struct {
	Version     string `json:"version"`
	ActiveSpans int    `json:"active_spans"`
}
