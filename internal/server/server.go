package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/agenthands/knetlabel/internal/core"
	"github.com/agenthands/knetlabel/internal/core/labels"
	"github.com/agenthands/knetlabel/internal/core/model"
	"github.com/agenthands/knetlabel/internal/logger"
)

type Server struct {
	Labeler *core.Labeler
	Log     *logger.Logger
}

func NewServer(l *core.Labeler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		Labeler: l,
		Log:     log.With("component", "server"),
	}
}

func (s *Server) SetupRouter(serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/labels", s.Labels)
	r.POST("/concepts", s.SaveConcept)
	r.GET("/concepts/:id/label", s.ConceptLabel)
	r.POST("/concepts/:id/label", s.RelabelConcept)
	r.POST("/concepts/relabel", s.Relabel)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type LabelsRequest struct {
	Concepts         []model.Concept `json:"concepts" binding:"required"`
	FilterAccessions *bool           `json:"filter_accessions"`
	MaxLen           *int            `json:"max_len" binding:"omitempty,gte=0"`
}

// Labels resolves labels for the posted concepts without touching the store.
func (s *Server) Labels(c *gin.Context) {
	var req LabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var opts []labels.Option
	if req.FilterAccessions != nil {
		opts = append(opts, labels.WithAccessionFiltering(*req.FilterAccessions))
	}
	if req.MaxLen != nil {
		opts = append(opts, labels.WithMaxLen(*req.MaxLen))
	}

	results, err := s.Labeler.LabelAll(c.Request.Context(), req.Concepts, opts...)
	if err != nil {
		s.fail(c, "Failed to resolve labels", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": results})
}

type SaveConceptRequest struct {
	Concept model.Concept `json:"concept" binding:"required"`
}

func (s *Server) SaveConcept(c *gin.Context) {
	var req SaveConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := s.Labeler.SaveConcept(c.Request.Context(), req.Concept); err != nil {
		s.fail(c, "Failed to save concept", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "id": req.Concept.ID})
}

func (s *Server) ConceptLabel(c *gin.Context) {
	res, err := s.Labeler.LabelConcept(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "Failed to label concept", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RelabelConcept recomputes and stores the label of one concept.
func (s *Server) RelabelConcept(c *gin.Context) {
	res, err := s.Labeler.RelabelConcept(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "Failed to relabel concept", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type RelabelRequest struct {
	Type string `json:"type"`
}

func (s *Server) Relabel(c *gin.Context) {
	var req RelabelRequest
	// Only an empty body relabels every concept. Chunked bodies report no
	// length, so the body is always decoded.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	stats, err := s.Labeler.Relabel(c.Request.Context(), req.Type)
	if err != nil {
		s.fail(c, "Failed to relabel concepts", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Log.Error(msg, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, labels.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrConceptNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
