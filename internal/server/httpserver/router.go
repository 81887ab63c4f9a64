// Package httpserver provides the span intake HTTP server for the
// TraceMesh agent.
package httpserver

import (
	"net/http"

	"github.com/yndnr/tracemesh-go/internal/core/service"
	"github.com/yndnr/tracemesh-go/internal/server/httpserver/handler"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Tracer handles span lifecycle operations.
	Tracer *service.TracerService

	// Logger for request logging.
	Logger logger.Logger

	// EnableAccessLog logs every handled request at debug level.
	EnableAccessLog bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
//
// @design DS-0401
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.Tracer, log)

	// Order: Recover -> RequestID -> AccessLog -> Handler
	middlewares := []Middleware{
		Recover(log),
		RequestID(),
	}
	if cfg.EnableAccessLog {
		middlewares = append(middlewares, AccessLog(log))
	}

	return Chain(h, middlewares...)
}
