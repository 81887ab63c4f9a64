// Package export delivers finished spans to the trace backend.
//
// The Exporter batches spans handed over by the tracer service and a
// Sender ships each batch. The default sender posts JSON over HTTP.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
)

// Sender ships one batch of finished spans to the backend.
type Sender interface {
	Send(ctx context.Context, spans []*domain.Span) error
}

// spansPath is the backend endpoint accepting span batches.
const spansPath = "/v1/spans"

// spanPayload is the wire representation of a finished span. Tags and
// metrics are flattened out of the attribute store at encode time.
type spanPayload struct {
	TraceID  string             `json:"trace_id"`
	SpanID   string             `json:"span_id"`
	ParentID string             `json:"parent_id,omitempty"`
	Name     string             `json:"name"`
	Service  string             `json:"service"`
	Resource string             `json:"resource,omitempty"`
	Start    int64              `json:"start"`
	Duration int64              `json:"duration"`
	Tags     map[string]string  `json:"tags,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// encodeBatch serializes a batch of spans to JSON.
func encodeBatch(spans []*domain.Span) ([]byte, error) {
	payloads := make([]spanPayload, 0, len(spans))
	for _, s := range spans {
		p := spanPayload{
			TraceID:  s.TraceID,
			SpanID:   s.SpanID,
			ParentID: s.ParentID,
			Name:     s.Name,
			Service:  s.Service,
			Resource: s.Resource,
			Start:    s.Start,
			Duration: s.Duration,
		}
		attrs := s.Attributes()
		attrs.EnumerateTags(func(key, value string) {
			if p.Tags == nil {
				p.Tags = make(map[string]string)
			}
			p.Tags[key] = value
		})
		attrs.EnumerateMetrics(func(key string, value float64) {
			if p.Metrics == nil {
				p.Metrics = make(map[string]float64)
			}
			p.Metrics[key] = value
		})
		payloads = append(payloads, p)
	}

	data, err := json.Marshal(payloads)
	if err != nil {
		return nil, domain.ErrExportEncode.WithCause(err)
	}
	return data, nil
}

// HTTPSender posts span batches to the trace backend.
type HTTPSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPSenderOption configures a HTTPSender.
type HTTPSenderOption func(*HTTPSender)

// WithAPIKey sets the backend API key sent with each request.
func WithAPIKey(key string) HTTPSenderOption {
	return func(s *HTTPSender) {
		s.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPSenderOption {
	return func(s *HTTPSender) {
		s.client = client
	}
}

// NewHTTPSender creates a sender against the given backend endpoint.
func NewHTTPSender(endpoint string, opts ...HTTPSenderOption) *HTTPSender {
	baseURL := endpoint
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	s := &HTTPSender{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, spans []*domain.Span) error {
	data, err := encodeBatch(spans)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+spansPath, bytes.NewReader(data))
	if err != nil {
		return domain.ErrExportSend.WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ErrExportSend.WithCause(err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ErrExportSend.WithDetails(
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
