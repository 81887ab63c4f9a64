// Package handler provides HTTP request handlers for the TraceMesh
// span intake API.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/core/service"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
//
// @design DS-0401
type Handler struct {
	tracer *service.TracerService
	log    logger.Logger
	mux    *http.ServeMux
}

// New creates a new Handler backed by the given tracer service.
//
// @design DS-0401
func New(tracer *service.TracerService, log logger.Logger) *Handler {
	h := &Handler{
		tracer: tracer,
		log:    log,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Span lifecycle endpoints
	h.mux.HandleFunc("POST /v1/spans", h.handleStartSpan)
	h.mux.HandleFunc("GET /v1/spans/{id}", h.handleGetSpan)
	h.mux.HandleFunc("POST /v1/spans/{id}/finish", h.handleFinishSpan)

	// Span attribute endpoints
	h.mux.HandleFunc("PUT /v1/spans/{id}/tags", h.handleSetTag)
	h.mux.HandleFunc("DELETE /v1/spans/{id}/tags/{key}", h.handleUnsetTag)
	h.mux.HandleFunc("PUT /v1/spans/{id}/metrics", h.handleSetMetric)
	h.mux.HandleFunc("DELETE /v1/spans/{id}/metrics/{key}", h.handleUnsetMetric)

	// Status endpoint
	h.mux.HandleFunc("GET /v1/status", h.handleStatus)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts the request ID set by the middleware.
func getRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	h.log.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "TR-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "TR-ARG-"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "TR-SYS-5"), strings.HasPrefix(code, "TR-CONF-5"), strings.HasPrefix(code, "TR-EXPORT-5"):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
