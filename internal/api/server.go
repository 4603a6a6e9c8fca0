// Package api exposes the planning tools and scenario pipelines over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gosupply/app"
	"gosupply/internal/report"
	"gosupply/internal/tools"
	"gosupply/ports"
)

const requestIDHeader = "X-Request-ID"

// Deps are the components the HTTP surface serves
type Deps struct {
	Tools    *tools.Registry
	Services *app.Services
	// Intent is optional; natural-language endpoints answer 503 without it
	Intent ports.IntentParser
	Logger *zap.Logger
}

// Server represents the planning HTTP server
type Server struct {
	router   *gin.Engine
	tools    *tools.Registry
	services *app.Services
	intent   ports.IntentParser
	reports  *report.Renderer
	logger   *zap.Logger
}

// NewServer creates the router with all routes registered
func NewServer(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:   gin.New(),
		tools:    d.Tools,
		services: d.Services,
		intent:   d.Intent,
		reports:  report.NewRenderer(""),
		logger:   logger.Named("api"),
	}
	s.router.Use(gin.Recovery(), requestID(), s.accessLog())
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth())

	api := s.router.Group("/api")
	{
		api.GET("/tools", s.handleListTools())
		api.POST("/tools/:name", s.handleCallTool())
		api.POST("/recommendations/:task", s.handleRecommend())
		api.POST("/intent/:task", s.handleIntent())
		api.POST("/reports", s.handleReport())
	}
}

// requestID propagates or assigns a request id
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
