package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent_backend/agent"
	"agent_backend/store"
)

// analyticsLimit caps the number of interactions returned by /analytics.
const analyticsLimit = 10

// Resolver is what the chat handler needs from the pipeline.
type Resolver interface {
	Resolve(ctx context.Context, q agent.Query) (agent.Response, error)
}

// ChatRequest is the /chat body. UserID is a pointer so that an absent
// field and a literal 0 are distinguishable under required-validation.
type ChatRequest struct {
	UserID *int64 `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type ChatResponse struct {
	Response       string  `json:"response"`
	Source         string  `json:"source"`
	LatencySeconds float64 `json:"latency_seconds"`
}

type Server struct {
	resolver Resolver
	store    store.Store
	logger   zerolog.Logger
}

func New(resolver Resolver, logStore store.Store, logger zerolog.Logger) *Server {
	return &Server{
		resolver: resolver,
		store:    logStore,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/chat", s.handleChat)
	r.GET("/analytics", s.handleAnalytics)
	r.GET("/healthz", s.handleHealth)

	return r
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	resp, err := s.resolver.Resolve(c.Request.Context(), agent.Query{
		UserID: *req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		// Full cause goes to the operational log only; the client gets
		// a terse generic message.
		s.logger.Error().Err(err).Msg("fail to resolve query")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response:       resp.Text,
		Source:         string(resp.Source),
		LatencySeconds: resp.Latency,
	})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	recs, err := s.store.Recent(c.Request.Context(), analyticsLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("fail to list interactions")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
