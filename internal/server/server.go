// Package server exposes the Unsplash client over HTTP behind the rate limit gate.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	unsplash "github.com/jassus213/go-unsplash"
	ginmw "github.com/jassus213/go-unsplash/middleware/gin"
	"github.com/jassus213/go-unsplash/ratelimiter"
)

// Server represents the HTTP proxy
type Server struct {
	engine *gin.Engine
	server *http.Server
	addr   string
	logger *zap.Logger
}

// Deps are the components the routes are served from.
type Deps struct {
	Client   *unsplash.Client
	Gate     *ratelimiter.Gate
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// New creates a Server listening on addr.
func New(addr string, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	engine := gin.New()
	engine.Use(requestLogger(deps.Logger), gin.Recovery())
	registerRoutes(engine, deps)

	return &Server{
		engine: engine,
		addr:   addr,
		logger: deps.Logger,
	}
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for testing
func (s *Server) Handler() http.Handler {
	return s.engine
}

func registerRoutes(r *gin.Engine, deps Deps) {
	h := &handlers{client: deps.Client, gate: deps.Gate, logger: deps.Logger}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ratelimit", h.rateLimit)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api", ginmw.RateLimiter(deps.Gate))
	{
		api.GET("/photos/search", h.searchPhotos)
		api.GET("/photos/search/advanced", h.searchPhotosAdvanced)
		api.GET("/photos/random", h.randomPhoto)
		api.GET("/photos/:id", h.photo)
		api.GET("/photos/:id/download", h.photoDownload)

		api.GET("/collections", h.listCollections)
		api.GET("/collections/search", h.searchCollections)
		api.GET("/collections/:id", h.collection)

		api.GET("/users/:username", h.user)
		api.GET("/users/:username/photos", h.userPhotos)
	}
}

func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
