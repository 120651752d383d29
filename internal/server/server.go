package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/saber/internal/core/model"
)

// InstitutionResolver is what the handlers need from resolver.Resolver.
type InstitutionResolver interface {
	HybridSearch(ctx context.Context, query string) []model.Candidate
	HybridValidation(ctx context.Context, name, municipalityHint string) *model.Candidate
}

type Server struct {
	Resolver     InstitutionResolver
	BulkValidate int
	logger       *zap.Logger
}

func NewServer(r InstitutionResolver, bulkValidate int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bulkValidate < 1 {
		bulkValidate = 1
	}
	return &Server{
		Resolver:     r,
		BulkValidate: bulkValidate,
		logger:       logger.Named("http"),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)

	inst := r.Group("/institutions")
	inst.POST("/search", s.Search)
	inst.POST("/validate", s.Validate)
	inst.POST("/validate/batch", s.ValidateBatch)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchRequest has no required fields: a short or missing query is an empty
// result, not a client error.
type SearchRequest struct {
	Query string `json:"query"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	results := s.Resolver.HybridSearch(c.Request.Context(), req.Query)
	if results == nil {
		results = []model.Candidate{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type ValidateRequest struct {
	Name         string `json:"name" binding:"required"`
	Municipality string `json:"municipality"`
}

type ValidateResponse struct {
	Institution *model.Candidate `json:"institution"`
	Found       bool             `json:"found"`
}

func (s *Server) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	inst := s.Resolver.HybridValidation(c.Request.Context(), req.Name, req.Municipality)
	c.JSON(http.StatusOK, ValidateResponse{Institution: inst, Found: inst != nil})
}

type BatchValidateRequest struct {
	Items []ValidateRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// ValidateBatch validates several names concurrently and answers in request
// order.
func (s *Server) ValidateBatch(c *gin.Context) {
	var req BatchValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	results := make([]ValidateResponse, len(req.Items))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(s.BulkValidate)
	for i, item := range req.Items {
		g.Go(func() error {
			inst := s.Resolver.HybridValidation(ctx, item.Name, item.Municipality)
			results[i] = ValidateResponse{Institution: inst, Found: inst != nil}
			return nil
		})
	}
	// HybridValidation never fails, so neither does the group.
	_ = g.Wait()

	c.JSON(http.StatusOK, gin.H{"results": results})
}
