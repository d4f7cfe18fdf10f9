// Package ui exposes the analysis pipeline over HTTP: one upload-and-analyze
// route, a chat passthrough, and a liveness endpoint.
package ui

import (
	"log"

	"autoeda/app"
	"autoeda/internal/config"
	"autoeda/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// Server is the web server for the AutoEDA API.
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	oracle  ports.Oracle

	// analysisSlots bounds how many analyses run at once; rendering a full
	// report holds several chart canvases worth of memory.
	analysisSlots *semaphore.Weighted

	// maxUpload caps the accepted upload size; larger files are rejected
	// outright rather than truncated to a silently partial dataset.
	maxUpload int64
}

// NewServer creates and wires the web server.
func NewServer(cfg *config.Config, service *app.AnalysisService, oracle ports.Oracle) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:        gin.Default(),
		service:       service,
		oracle:        oracle,
		analysisSlots: semaphore.NewWeighted(cfg.Analysis.MaxConcurrent),
		maxUpload:     maxUploadBytes,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	s.router.Use(RequestIDMiddleware())
}

// setupRoutes registers the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/chat", s.handleChat)
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server on the given address.
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting AutoEDA server on %s", addr)
	return s.router.Run(addr)
}
