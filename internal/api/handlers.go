// ABOUTME: HTTP handlers for profile, analysis, and assessment endpoints.
// ABOUTME: Maps storage and validation errors onto HTTP status codes.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"github.com/harperreed/carewise/internal/storage"
	"go.uber.org/zap"
)

func (s *Server) handleGetProfile(c *gin.Context) {
	p, err := s.repo.Profile(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no health profile saved"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handlePutProfile(c *gin.Context) {
	p, ok := s.bindProfile(c)
	if !ok {
		return
	}

	a, err := s.repo.SaveProfile(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleDeleteProfile(c *gin.Context) {
	if err := s.repo.ClearProfile(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleGetAnalysis evaluates the saved profile. With no profile saved it
// returns the neutral analysis rather than an error.
func (s *Server) handleGetAnalysis(c *gin.Context) {
	p, err := s.repo.Profile(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assess.Analyze(p))
}

// handleEvaluate analyzes a posted profile without storing it.
func (s *Server) handleEvaluate(c *gin.Context) {
	p, ok := s.bindProfile(c)
	if !ok {
		return
	}
	if err := models.Validate(p); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assess.Analyze(p))
}

func (s *Server) handleListAssessments(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	assessments, err := s.repo.Assessments(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments, "count": len(assessments)})
}

func (s *Server) handleGetAssessment(c *gin.Context) {
	a, err := s.repo.Assessment(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleDeleteAssessment(c *gin.Context) {
	if err := s.repo.DeleteAssessment(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindProfile decodes the request body into a profile.
func (s *Server) bindProfile(c *gin.Context) (*models.HealthProfile, bool) {
	var p models.HealthProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return nil, false
	}
	return &p, true
}

// fail writes err with the matching status code.
func (s *Server) fail(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrAmbiguous):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrReadOnly):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
