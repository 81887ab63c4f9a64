// Package handler provides HTTP request handlers for the TraceMesh
// span intake API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/core/service"
	"github.com/yndnr/tracemesh-go/internal/infra/buildinfo"
)

// handleStartSpan handles POST /v1/spans.
//
// @design DS-0401
func (h *Handler) handleStartSpan(w http.ResponseWriter, r *http.Request) {
	var req StartSpanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "TR-ARG-1001", "invalid request body", nil)
		return
	}

	svcReq := &service.StartSpanRequest{
		Name:     req.Name,
		Service:  req.Service,
		Resource: req.Resource,
	}

	if req.ParentID != "" {
		parent, err := h.tracer.GetSpan(r.Context(), req.ParentID)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		svcReq.Parent = parent
	}

	span, err := h.tracer.StartSpan(r.Context(), svcReq)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, &StartSpanResponse{
		TraceID: span.TraceID,
		SpanID:  span.SpanID,
		Sampled: span.Sampled,
	})
}

// handleGetSpan handles GET /v1/spans/{id}.
//
// @design DS-0401
func (h *Handler) handleGetSpan(w http.ResponseWriter, r *http.Request) {
	span, err := h.tracer.GetSpan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	snap := &SpanSnapshot{
		TraceID:  span.TraceID,
		SpanID:   span.SpanID,
		ParentID: span.ParentID,
		Name:     span.Name,
		Service:  span.Service,
		Resource: span.Resource,
		Start:    span.Start,
		Sampled:  span.Sampled,
	}
	attrs := span.Attributes()
	attrs.EnumerateTags(func(key, value string) {
		if snap.Tags == nil {
			snap.Tags = make(map[string]string)
		}
		snap.Tags[key] = value
	})
	attrs.EnumerateMetrics(func(key string, value float64) {
		if snap.Metrics == nil {
			snap.Metrics = make(map[string]float64)
		}
		snap.Metrics[key] = value
	})

	h.writeJSON(w, r, http.StatusOK, snap)
}

// handleFinishSpan handles POST /v1/spans/{id}/finish.
//
// @design DS-0401
func (h *Handler) handleFinishSpan(w http.ResponseWriter, r *http.Request) {
	err := h.tracer.FinishSpan(r.Context(), &service.FinishSpanRequest{
		SpanID: r.PathValue("id"),
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleSetTag handles PUT /v1/spans/{id}/tags.
//
// @design DS-0401
func (h *Handler) handleSetTag(w http.ResponseWriter, r *http.Request) {
	var req SetTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "TR-ARG-1001", "invalid request body", nil)
		return
	}
	if req.Key == "" {
		h.handleServiceError(w, r, domain.ErrMissingArgument.WithDetails("key is required"))
		return
	}

	span, err := h.tracer.GetSpan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	span.SetTag(req.Key, req.Value)
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleUnsetTag handles DELETE /v1/spans/{id}/tags/{key}.
//
// @design DS-0401
func (h *Handler) handleUnsetTag(w http.ResponseWriter, r *http.Request) {
	span, err := h.tracer.GetSpan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	span.Attributes().UnsetTag(r.PathValue("key"))
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleSetMetric handles PUT /v1/spans/{id}/metrics.
//
// @design DS-0401
func (h *Handler) handleSetMetric(w http.ResponseWriter, r *http.Request) {
	var req SetMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "TR-ARG-1001", "invalid request body", nil)
		return
	}
	if req.Key == "" {
		h.handleServiceError(w, r, domain.ErrMissingArgument.WithDetails("key is required"))
		return
	}

	span, err := h.tracer.GetSpan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	span.SetMetric(req.Key, req.Value)
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleUnsetMetric handles DELETE /v1/spans/{id}/metrics/{key}.
//
// @design DS-0401
func (h *Handler) handleUnsetMetric(w http.ResponseWriter, r *http.Request) {
	span, err := h.tracer.GetSpan(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	span.Attributes().UnsetMetric(r.PathValue("key"))
	h.writeJSON(w, r, http.StatusOK, nil)
}

// handleStatus handles GET /v1/status.
//
// @design DS-0401
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, &StatusResponse{
		Version:     buildinfo.Version,
		ActiveSpans: h.tracer.ActiveCount(),
	})
}
