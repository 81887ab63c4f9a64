// Package service provides domain services for TraceMesh.
//
// TracerService handles the span lifecycle: creation, the sampling
// decision, attribute mutation through the returned span, and handoff
// of finished spans to the exporter.
package service

import (
	"context"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
	"github.com/yndnr/tracemesh-go/internal/telemetry/metric"
	"github.com/yndnr/tracemesh-go/pkg/cmap"
)

// Sampler decides whether a trace is kept. The decision is taken once,
// on the root span, and inherited by every child.
//
// @design DS-0104
type Sampler interface {
	// Sample reports whether the trace identified by traceID should
	// be kept.
	Sample(traceID string) bool
}

// SpanSink consumes finished, sampled spans.
//
// @design DS-0104
type SpanSink interface {
	// Enqueue hands a finished span to the sink. It must not block;
	// a full sink returns an error and the span is dropped.
	Enqueue(span *domain.Span) error
}

// TracerService manages in-flight spans.
//
// Open spans live in a sharded concurrent map keyed by span ID so that
// FinishSpan can be called from any goroutine, not just the one that
// started the span.
//
// @req RQ-0102
// @design DS-0104
type TracerService struct {
	spans   *cmap.Map[string, *domain.Span]
	sampler Sampler
	sink    SpanSink
	log     logger.Logger
	metrics *metric.Registry
}

// NewTracerService creates a new TracerService.
//
// sink may be nil, in which case finished spans are discarded. log and
// metrics may be nil.
//
// @design DS-0104
func NewTracerService(sampler Sampler, sink SpanSink, log logger.Logger, metrics *metric.Registry) *TracerService {
	if log == nil {
		log = logger.Default()
	}
	return &TracerService{
		spans:   cmap.New[string, *domain.Span](),
		sampler: sampler,
		sink:    sink,
		log:     log,
		metrics: metrics,
	}
}

// ============================================================================
// Span Start Operation
// ============================================================================

// StartSpanRequest contains parameters for span creation.
//
// @design DS-0104
type StartSpanRequest struct {
	Name     string       // Required operation name
	Service  string       // Required for root spans, inherited otherwise
	Resource string       // Optional
	Parent   *domain.Span // Optional, nil starts a new trace
}

// StartSpan creates a span and registers it as in-flight.
//
// Root spans take the sampling decision; child spans inherit the
// parent's decision so a trace is never half-sampled.
//
// @req RQ-0102
// @design DS-0104
func (t *TracerService) StartSpan(ctx context.Context, req *StartSpanRequest) (*domain.Span, error) {
	// 1. Validate required fields
	if req.Name == "" {
		return nil, domain.ErrMissingArgument.WithDetails("name is required")
	}
	if req.Parent == nil && req.Service == "" {
		return nil, domain.ErrMissingArgument.WithDetails("service is required for root spans")
	}

	// 2. Create span entity
	var (
		span *domain.Span
		err  error
	)
	if req.Parent != nil {
		span, err = domain.NewChildSpan(req.Parent, req.Name)
	} else {
		span, err = domain.NewSpan(req.Service, req.Name)
	}
	if err != nil {
		return nil, err
	}
	span.Resource = req.Resource

	// 3. Sampling decision
	if req.Parent != nil {
		span.Sampled = req.Parent.Sampled
	} else if t.sampler != nil {
		span.Sampled = t.sampler.Sample(span.TraceID)
	} else {
		span.Sampled = true
	}

	// 4. Register as in-flight
	t.spans.Set(span.SpanID, span)

	if t.metrics != nil {
		t.metrics.SpansStarted.Inc()
		t.metrics.ActiveSpans.Inc()
		if span.Sampled {
			t.metrics.SpansSampled.Inc()
		}
	}

	t.log.Debug("span started",
		"trace_id", span.TraceID,
		"span_id", span.SpanID,
		"name", span.Name,
		"sampled", span.Sampled,
	)
	return span, nil
}

// ============================================================================
// Span Query Operation
// ============================================================================

// GetSpan returns an in-flight span by ID.
//
// @design DS-0104
func (t *TracerService) GetSpan(ctx context.Context, spanID string) (*domain.Span, error) {
	if spanID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("span_id is required")
	}
	span, ok := t.spans.Get(spanID)
	if !ok {
		return nil, domain.ErrSpanNotFound.WithDetails(spanID)
	}
	return span, nil
}

// ActiveCount returns the number of in-flight spans.
func (t *TracerService) ActiveCount() int {
	return t.spans.Count()
}

// ============================================================================
// Span Finish Operation
// ============================================================================

// FinishSpanRequest contains parameters for closing a span.
//
// @design DS-0104
type FinishSpanRequest struct {
	SpanID string
}

// FinishSpan closes an in-flight span and, when the span is sampled,
// hands it to the sink.
//
// Export is best effort: a sink failure is counted and logged, but the
// span is still finished and FinishSpan returns nil.
//
// @req RQ-0102
// @design DS-0104
func (t *TracerService) FinishSpan(ctx context.Context, req *FinishSpanRequest) error {
	// 1. Validate input
	if req.SpanID == "" {
		return domain.ErrMissingArgument.WithDetails("span_id is required")
	}

	// 2. Remove from the in-flight registry
	span, ok := t.spans.Pop(req.SpanID)
	if !ok {
		return domain.ErrSpanNotFound.WithDetails(req.SpanID)
	}

	// 3. Close the span, recording its duration
	span.Finish()

	if t.metrics != nil {
		t.metrics.SpansFinished.Inc()
		t.metrics.ActiveSpans.Dec()
	}

	// 4. Hand off to the sink
	if !span.Sampled || t.sink == nil {
		return nil
	}
	if err := t.sink.Enqueue(span); err != nil {
		if t.metrics != nil {
			t.metrics.SpansDropped.Inc()
		}
		t.log.Warn("span dropped",
			"trace_id", span.TraceID,
			"span_id", span.SpanID,
			"error", err,
		)
	}
	return nil
}
