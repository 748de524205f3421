package server

import (
	"net/http"

	"interview-tracker/internal/models"
	"interview-tracker/internal/resume"
	"interview-tracker/internal/schedule"
	"interview-tracker/internal/storage/postgres"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "running",
		"renderer": s.monitor.Current(),
	})
}

// handleCalendar projects the filtered schedule set into timed events.
func (s *Server) handleCalendar(c *gin.Context) {
	filter := postgres.ScheduleFilter{
		ProfileName: c.Query("profile_name"),
		Date:        c.Query("date"),
		Assignee:    c.Query("assignee"),
	}

	schedules, err := s.store.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": schedule.Events(schedules),
	})
}

type promptRequest struct {
	ResumeID       string `json:"resumeid" binding:"required"`
	JobDescription string `json:"job_description"`
}

// handlePrompt assembles the interview-prep clipboard payload: rendered
// resume text, the pasted job description, and the fixed template.
func (s *Server) handlePrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	body, err := s.loadResumeBody(c, req.ResumeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if body == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Resume not found: " + req.ResumeID})
		return
	}

	record := models.ResumeRecord{ID: req.ResumeID, Body: body}
	structured, err := record.Structured()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"prompt": resume.BuildPrompt(resume.Text(structured), req.JobDescription),
	})
}
