// Package domain defines the core domain models for TraceMesh.
package domain

import (
	"crypto/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Identifier prefixes (ID format conventions, DS-0101).
const (
	// TraceIDPrefix is the prefix for trace IDs.
	// Format: tmtr-{ulid_lowercase}, 31 characters total.
	TraceIDPrefix = "tmtr-"

	// SpanIDPrefix is the prefix for span IDs.
	// Format: tmsp-{ulid_lowercase}, 31 characters total.
	SpanIDPrefix = "tmsp-"
)

// Span is one unit of instrumented work. It owns the AttributeStore
// holding its tags and metrics; everything else is identity and timing.
//
// A span is written by the goroutine doing the work and read by the
// exporter at flush time. The AttributeStore carries its own
// synchronization; the identity fields are set once at creation and
// never mutated afterwards.
//
// @req RQ-0102
// @design DS-0102
type Span struct {
	// TraceID identifies the trace this span belongs to.
	TraceID string `json:"trace_id"`

	// SpanID uniquely identifies this span.
	SpanID string `json:"span_id"`

	// ParentID is the span ID of the parent, empty for a root span.
	ParentID string `json:"parent_id,omitempty"`

	// Name is the operation name (e.g. "http.request").
	Name string `json:"name"`

	// Service is the logical service emitting the span.
	Service string `json:"service"`

	// Resource is the concrete resource being worked on
	// (e.g. "GET /users/:id").
	Resource string `json:"resource,omitempty"`

	// Start is the span start timestamp (Unix nanoseconds).
	Start int64 `json:"start"`

	// Duration is the span duration in nanoseconds, 0 while open.
	Duration int64 `json:"duration"`

	// Sampled reports the sampling decision taken at creation.
	Sampled bool `json:"-"`

	attrs    AttributeStore
	finished atomic.Bool
}

// NewSpan creates a root span with generated trace and span IDs.
func NewSpan(service, name string) (*Span, error) {
	traceID, err := GenerateID(TraceIDPrefix)
	if err != nil {
		return nil, err
	}
	return newSpanIn(traceID, "", service, name)
}

// NewChildSpan creates a span inside an existing trace.
func NewChildSpan(parent *Span, name string) (*Span, error) {
	return newSpanIn(parent.TraceID, parent.SpanID, parent.Service, name)
}

func newSpanIn(traceID, parentID, service, name string) (*Span, error) {
	spanID, err := GenerateID(SpanIDPrefix)
	if err != nil {
		return nil, err
	}
	return &Span{
		TraceID:  traceID,
		SpanID:   spanID,
		ParentID: parentID,
		Name:     name,
		Service:  service,
		Start:    time.Now().UnixNano(),
	}, nil
}

// GenerateID generates a prefixed ULID identifier.
// Format: {prefix}{ulid_lowercase}, 31 characters total.
func GenerateID(prefix string) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalError.WithCause(err)
	}
	return prefix + strings.ToLower(id.String()), nil
}

// Attributes returns the span's attribute store. The store is shared;
// callers may hold the returned pointer across goroutines.
func (s *Span) Attributes() *AttributeStore {
	return &s.attrs
}

// SetTag sets a string tag on the span.
func (s *Span) SetTag(key, value string) {
	s.attrs.SetTag(key, value)
}

// GetTag returns a tag value and whether it is present.
func (s *Span) GetTag(key string) (string, bool) {
	return s.attrs.GetTag(key)
}

// SetMetric sets a numeric metric on the span.
func (s *Span) SetMetric(key string, value float64) {
	s.attrs.SetMetric(key, value)
}

// GetMetric returns a metric value and whether it is present.
func (s *Span) GetMetric(key string) (float64, bool) {
	return s.attrs.GetMetric(key)
}

// Finish closes the span, recording its duration. Only the first call
// takes effect; Finish reports whether this call was the one that
// closed the span.
func (s *Span) Finish() bool {
	if !s.finished.CompareAndSwap(false, true) {
		return false
	}
	s.Duration = time.Now().UnixNano() - s.Start
	return true
}

// Finished reports whether the span has been closed.
func (s *Span) Finished() bool {
	return s.finished.Load()
}

// IsValidID reports whether id is a well-formed prefixed ULID.
func IsValidID(id, prefix string) bool {
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	_, err := ulid.Parse(strings.ToUpper(id[len(prefix):]))
	return err == nil
}
