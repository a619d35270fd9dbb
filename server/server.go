// Package server exposes the extraction pipeline over HTTP. Handlers
// validate and bound the input text; they perform no pipeline logic.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/metrics"
)

// maxTextLength bounds the accepted input size at the serving boundary.
const maxTextLength = 10000

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the successful response of POST /api/analyze.
type AnalyzeResponse struct {
	Success       bool                        `json:"success"`
	Text          string                      `json:"text"`
	Relationships []graph.RelationshipTriplet `json:"relationships"`
	Count         int                         `json:"count"`
}

// HealthResponse is the response of GET /api/health.
type HealthResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ExtractorReady bool   `json:"extractor_ready"`
}

// Server wraps the extractor with a gin HTTP API.
type Server struct {
	extractor *graph.Extractor
	engine    *gin.Engine
	logger    *logrus.Logger
}

// New creates a server around an already-initialized extractor. Extractor
// construction failures are startup failures and belong to the caller.
func New(extractor *graph.Extractor) *Server {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	s := &Server{
		extractor: extractor,
		logger:    logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/api/health", s.handleHealth)
	engine.POST("/api/analyze", s.handleAnalyze)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine = engine
	return s
}

// Engine returns the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	s.logger.WithField("addr", addr).Info("Starting entity relationship API server")
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	metrics.UpdateSystemMetrics()

	c.JSON(http.StatusOK, HealthResponse{
		Status:         "ok",
		Message:        "Entity Relationship Extractor API is running",
		ExtractorReady: s.extractor != nil,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}
	if len(req.Text) > maxTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text too long (maximum 10,000 characters)"})
		return
	}

	s.logger.WithField("text_length", len(req.Text)).Info("Analyzing text")

	triplets := s.extractor.Run(c.Request.Context(), req.Text)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success:       true,
		Text:          req.Text,
		Relationships: triplets,
		Count:         len(triplets),
	})
}
