package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/config"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/metrics"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/middleware"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/tracing"
	"github.com/yousuf64/shift"
)

// API handles the HTTP server and routes
type API struct {
	pipeline *pipeline.Pipeline
	mb       messagebus.MessageBusInterface
	metrics  *metrics.ServiceMetrics
	log      *slog.Logger
	srv      *http.Server
}

// ImportRequest is the request body for the imports endpoint
type ImportRequest struct {
	URL       string `json:"url"`
	MaxBytes  int64  `json:"max_size_bytes,omitempty"`
	TimeoutMs int64  `json:"timeout_ms,omitempty"`
}

// ImportResponse is the response body for a successful import
type ImportResponse struct {
	Success       bool                     `json:"success"`
	ImportID      string                   `json:"import_id"`
	URL           string                   `json:"url"`
	ContentType   string                   `json:"content_type"`
	ContentLength int                      `json:"content_length"`
	Analysis      pipeline.ContentAnalysis `json:"analysis"`
	Files         []pipeline.SyntheticFile `json:"files"`
}

// ErrorResponse is the response body for a failed import
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	URL     string `json:"url,omitempty"`
}

// NewAPI creates a new API with all dependencies
func NewAPI(
	p *pipeline.Pipeline,
	mb messagebus.MessageBusInterface,
	m *metrics.ServiceMetrics,
	log *slog.Logger,
) *API {
	return &API{
		pipeline: p,
		mb:       mb,
		metrics:  m,
		log:      log,
	}
}

// Start starts the HTTP server
func (a *API) Start(ctx context.Context, cfg *config.Config) error {
	router := shift.New()
	router.Use(tracing.OtelMiddleware)
	router.Use(middleware.CORSMiddleware)
	if a.metrics != nil {
		router.Use(a.metrics.HTTPMiddleware)
	}
	router.Use(middleware.ErrorMiddleware(a.log))

	// Register routes
	router.OPTIONS("/*wildcard", middleware.OptionsHandler)
	router.POST("/imports", a.handleImport)

	addr := ":8080"
	if cfg != nil && cfg.HTTP.Addr != "" {
		addr = cfg.HTTP.Addr
	}

	a.srv = &http.Server{
		Addr:         addr,
		Handler:      router.Serve(),
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.log.Info("API server starting", slog.String("addr", addr))
	return a.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *API) Shutdown(ctx context.Context) error {
	a.log.Info("Shutting down API server")
	if a.srv != nil {
		return a.srv.Shutdown(ctx)
	}
	return nil
}
