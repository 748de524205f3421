package server

import (
	"errors"
	"fmt"
	"net/http"

	"interview-tracker/internal/models"
	"interview-tracker/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// loadResumeBody fetches a resume document, cache first.
func (s *Server) loadResumeBody(c *gin.Context, id string) (models.RawJSON, error) {
	ctx := c.Request.Context()

	if body, err := s.cache.GetCachedResume(ctx, id); err == nil {
		return body, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Debug("resume cache read failed", zap.Error(err))
	}

	record, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if err := s.cache.CacheResume(ctx, id, record.Body); err != nil {
		s.logger.Debug("resume cache write failed", zap.Error(err))
	}

	return record.Body, nil
}

func (s *Server) handleGetResume(c *gin.Context) {
	id := c.Param("id")

	body, err := s.loadResumeBody(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if body == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Resume not found: %s", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"resume_id": id,
		"resume":    body,
	})
}

// handleResumePDF proxies the stored resume through the external renderer
// and streams the PDF back for download.
func (s *Server) handleResumePDF(c *gin.Context) {
	id := c.Param("id")

	body, err := s.loadResumeBody(c, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if body == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("Resume not found: %s", id)})
		return
	}

	pdf, err := s.renderer.Render(c.Request.Context(), CredentialFrom(c), body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
