// Package http wires the gin route tree and the HTTP server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/stilbar/internal/interfaces/http/handlers"
	"github.com/turtacn/stilbar/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and cross-cutting dependencies the
// route tree needs.
type RouterConfig struct {
	ConvertHandler *handlers.ConvertHandler
	LibraryHandler *handlers.LibraryHandler
	HealthHandler  *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.Metrics
	Mode    string
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger, "/healthz", "/readyz", "/metrics"))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	if h := cfg.ConvertHandler; h != nil {
		api.POST("/convert", h.Convert)
		api.POST("/convert/batch", h.ConvertBatch)
		api.POST("/batch/jobs", h.SubmitBatchJob)
		api.GET("/batch/jobs/:id", h.GetBatchJob)
	}
	if h := cfg.LibraryHandler; h != nil {
		api.GET("/compounds", h.List)
		api.POST("/compounds", h.Create)
		api.DELETE("/compounds", h.Delete)
		api.GET("/compounds/stats", h.Stats)
		api.GET("/compounds/export", h.Export)
		api.POST("/compounds/import", h.Import)
		api.POST("/compounds/similar", h.Similar)
		api.GET("/compounds/:hash", h.Get)
		api.GET("/compounds/:hash/properties", h.Analyze)
	}

	return r
}
