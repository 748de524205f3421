package server

import (
	"encoding/json"
	"net/http"
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type applicationRequest struct {
	ProfileName string          `json:"profile_name" binding:"required"`
	CompanyName string          `json:"company_name" binding:"required"`
	RoleName    string          `json:"role_name" binding:"required"`
	JobLink     string          `json:"job_link" binding:"required"`
	Resume      json.RawMessage `json:"resume" binding:"required"`
}

// handleCreateApplication stores the submitted resume, mints its ID and
// records the applied job under today's CET date.
func (s *Server) handleCreateApplication(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctx := c.Request.Context()

	resumeID, err := s.store.SaveResume(ctx, models.RawJSON(req.Resume))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if err := s.cache.CacheResume(ctx, resumeID, models.RawJSON(req.Resume)); err != nil {
		s.logger.Debug("resume cache write failed", zap.Error(err))
	}

	app := &models.Application{
		ProfileName: req.ProfileName,
		AppliedDate: time.Now().In(civiltime.CET).Format("2006-01-02"),
		CompanyName: req.CompanyName,
		RoleName:    req.RoleName,
		Link:        req.JobLink,
		ResumeID:    resumeID,
	}

	if err := s.store.UpsertApplication(ctx, app); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"date":     app.AppliedDate,
		"resumeid": resumeID,
	})
}

func (s *Server) handleListApplied(c *gin.Context) {
	profileName := c.Query("profile_name")
	if profileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "profile_name is required"})
		return
	}

	apps, err := s.store.ListApplications(c.Request.Context(), profileName, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if apps == nil {
		apps = []models.Application{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"data":         apps,
		"profile_name": profileName,
	})
}
