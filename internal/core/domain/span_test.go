package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewSpan(t *testing.T) {
	span, err := NewSpan("checkout", "http.request")
	if err != nil {
		t.Fatalf("NewSpan() error = %v", err)
	}

	if !strings.HasPrefix(span.TraceID, TraceIDPrefix) {
		t.Errorf("TraceID = %q, want prefix %q", span.TraceID, TraceIDPrefix)
	}
	if !strings.HasPrefix(span.SpanID, SpanIDPrefix) {
		t.Errorf("SpanID = %q, want prefix %q", span.SpanID, SpanIDPrefix)
	}
	if len(span.TraceID) != 31 {
		t.Errorf("TraceID length = %d, want 31", len(span.TraceID))
	}
	if span.ParentID != "" {
		t.Errorf("root span ParentID = %q, want empty", span.ParentID)
	}
	if span.Service != "checkout" || span.Name != "http.request" {
		t.Errorf("identity = (%s, %s), want (checkout, http.request)", span.Service, span.Name)
	}
	if span.Start == 0 {
		t.Error("Start should be set")
	}
	if span.Finished() {
		t.Error("new span should not be finished")
	}
}

func TestNewChildSpan(t *testing.T) {
	parent, err := NewSpan("checkout", "http.request")
	if err != nil {
		t.Fatalf("NewSpan() error = %v", err)
	}

	child, err := NewChildSpan(parent, "db.query")
	if err != nil {
		t.Fatalf("NewChildSpan() error = %v", err)
	}

	if child.TraceID != parent.TraceID {
		t.Errorf("child TraceID = %q, want parent's %q", child.TraceID, parent.TraceID)
	}
	if child.ParentID != parent.SpanID {
		t.Errorf("child ParentID = %q, want %q", child.ParentID, parent.SpanID)
	}
	if child.SpanID == parent.SpanID {
		t.Error("child SpanID must differ from parent's")
	}
	if child.Service != parent.Service {
		t.Errorf("child Service = %q, want inherited %q", child.Service, parent.Service)
	}
}

func TestSpanFinish(t *testing.T) {
	span, err := NewSpan("checkout", "http.request")
	if err != nil {
		t.Fatalf("NewSpan() error = %v", err)
	}

	time.Sleep(time.Millisecond)

	if !span.Finish() {
		t.Error("first Finish() should report true")
	}
	if span.Duration <= 0 {
		t.Errorf("Duration = %d, want > 0", span.Duration)
	}
	if !span.Finished() {
		t.Error("span should be finished")
	}

	dur := span.Duration
	if span.Finish() {
		t.Error("second Finish() should report false")
	}
	if span.Duration != dur {
		t.Error("second Finish() must not touch Duration")
	}
}

func TestSpanTagDelegation(t *testing.T) {
	span, err := NewSpan("checkout", "http.request")
	if err != nil {
		t.Fatalf("NewSpan() error = %v", err)
	}

	span.SetTag("http.status_code", "200")
	span.SetMetric("payload_bytes", 512)

	if v, ok := span.GetTag("http.status_code"); !ok || v != "200" {
		t.Errorf("GetTag = (%q, %v), want (200, true)", v, ok)
	}
	if v, ok := span.GetMetric("payload_bytes"); !ok || v != 512 {
		t.Errorf("GetMetric = (%v, %v), want (512, true)", v, ok)
	}
	if v, ok := span.Attributes().GetTag("http.status_code"); !ok || v != "200" {
		t.Errorf("Attributes().GetTag = (%q, %v), want (200, true)", v, ok)
	}
}

func TestIsValidID(t *testing.T) {
	id, err := GenerateID(TraceIDPrefix)
	if err != nil {
		t.Fatalf("GenerateID() error = %v", err)
	}

	if !IsValidID(id, TraceIDPrefix) {
		t.Errorf("IsValidID(%q) = false, want true", id)
	}
	if IsValidID(id, SpanIDPrefix) {
		t.Error("trace ID should not validate against span prefix")
	}
	if IsValidID("tmtr-not-a-ulid", TraceIDPrefix) {
		t.Error("malformed ULID should not validate")
	}
}

func TestGenerateIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateID(SpanIDPrefix)
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
