package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rugguard/internal/models"
)

const defaultHistoryLimit = 20

// AnalysisStore reads the persisted analysis history.
type AnalysisStore interface {
	GetRecent(limit int) ([]*models.StoredAnalysis, error)
	GetByUsername(username string, limit int) ([]*models.StoredAnalysis, error)
}

// OnDemandAnalyzer runs an analysis for a handle without posting a reply.
type OnDemandAnalyzer interface {
	AnalyzeUsername(ctx context.Context, username string) (*models.AnalysisResult, error)
}

// Server exposes the analysis history and an on-demand analyze endpoint.
type Server struct {
	router   *gin.Engine
	store    AnalysisStore
	analyzer OnDemandAnalyzer
	logger   *zap.Logger
}

// NewServer builds the HTTP API server.
func NewServer(store AnalysisStore, analyzer OnDemandAnalyzer, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		store:    store,
		analyzer: analyzer,
		logger:   logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api")
	{
		api.GET("/analyses", s.handleGetRecent)
		api.GET("/analyses/:username", s.handleGetByUsername)
		api.POST("/analyze", s.handleAnalyze)
	}
}

func (s *Server) handleGetRecent(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	analyses, err := s.store.GetRecent(limit)
	if err != nil {
		s.logger.Error("Failed to load recent analyses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (s *Server) handleGetByUsername(c *gin.Context) {
	username := c.Param("username")
	limit := parseLimit(c.Query("limit"))

	analyses, err := s.store.GetByUsername(username, limit)
	if err != nil {
		s.logger.Error("Failed to load analyses for user",
			zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "analyses": analyses})
}

type analyzeRequest struct {
	Username string `json:"username" binding:"required"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	result, err := s.analyzer.AnalyzeUsername(c.Request.Context(), req.Username)
	if err != nil {
		s.logger.Error("On-demand analysis failed",
			zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultHistoryLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return defaultHistoryLimit
	}
	return limit
}

// Run starts the HTTP server. Blocks until the server fails.
func (s *Server) Run(addr string) {
	s.logger.Info("API server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("API server failed", zap.Error(err))
	}
}
