package server

import (
	"errors"
	"net/http"

	"interview-tracker/internal/models"
	"interview-tracker/internal/schedule"
	"interview-tracker/internal/storage/postgres"
	"interview-tracker/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type scheduleRequest struct {
	Action            string `json:"action"`
	ProfileName       string `json:"profile_name"`
	CompanyName       string `json:"company_name"`
	RoleName          string `json:"role_name"`
	JobLink           string `json:"job_link"`
	ResumeID          string `json:"resumeid"`
	InterviewStage    string `json:"interview_stage"`
	NextSteps         string `json:"next_steps"`
	Passed            bool   `json:"passed"`
	Status            string `json:"status"`
	InterviewLink     string `json:"interview_link"`
	InterviewDatetime string `json:"interview_datetime"`
	Assignee          string `json:"assignee"`
	Duration          string `json:"duration"`
}

// action resolves the lifecycle action. Requests without an explicit action
// field (legacy clients) are mapped from the passed flag and target status.
func (r *scheduleRequest) action() (models.Action, error) {
	if r.Action != "" {
		return models.ParseAction(r.Action)
	}
	if r.Passed {
		return models.ActionPassed, nil
	}
	if r.Status == string(models.StatusFailed) {
		return models.ActionFailed, nil
	}
	return models.ActionEdit, nil
}

func (s *Server) handleUpsertSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	action, err := req.action()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	input := schedule.Input{
		ScheduleKey: models.ScheduleKey{
			ProfileName: req.ProfileName,
			CompanyName: req.CompanyName,
			RoleName:    req.RoleName,
		},
		Link:              req.JobLink,
		ResumeID:          req.ResumeID,
		InterviewLink:     req.InterviewLink,
		InterviewDatetime: req.InterviewDatetime,
		Duration:          req.Duration,
		InterviewStage:    req.InterviewStage,
		NextSteps:         req.NextSteps,
		Assignee:          req.Assignee,
		Status:            status,
		Passed:            req.Passed,
	}

	saved, err := s.manager.Apply(c.Request.Context(), action, input)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	s.invalidateScheduleCache(c, saved.ProfileName)

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": saved})
}

func (s *Server) handleListSchedules(c *gin.Context) {
	filter := postgres.ScheduleFilter{
		ProfileName: c.Query("profile_name"),
		Date:        c.Query("date"),
		Assignee:    c.Query("assignee"),
	}

	// Only the plain per-profile listing is cached; date and assignee
	// filters are narrow enough to hit the store directly.
	cacheable := filter.ProfileName != "" && filter.Date == "" && filter.Assignee == ""

	if cacheable {
		if cached, err := s.cache.GetCachedScheduleList(c.Request.Context(), filter.ProfileName); err == nil {
			c.JSON(http.StatusOK, listResponse(cached, filter))
			return
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Debug("schedule cache read failed", zap.Error(err))
		}
	}

	schedules, err := s.store.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if cacheable {
		if err := s.cache.CacheScheduleList(c.Request.Context(), filter.ProfileName, schedules); err != nil {
			s.logger.Debug("schedule cache write failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, listResponse(schedules, filter))
}

func listResponse(schedules []models.Schedule, filter postgres.ScheduleFilter) gin.H {
	profile := filter.ProfileName
	if profile == "" {
		profile = "all"
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return gin.H{
		"ok":           true,
		"data":         schedules,
		"profile_name": profile,
		"date":         filter.Date,
		"assignee":     filter.Assignee,
	}
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	key := models.ScheduleKey{
		ProfileName: c.Query("profile_name"),
		CompanyName: c.Query("company_name"),
		RoleName:    c.Query("role_name"),
	}

	if err := s.manager.Delete(c.Request.Context(), key); err != nil {
		var verr *schedule.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Msg})
		case errors.Is(err, postgres.ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Schedule not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	s.invalidateScheduleCache(c, key.ProfileName)

	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": key})
}

func (s *Server) invalidateScheduleCache(c *gin.Context, profileName string) {
	if err := s.cache.InvalidateScheduleList(c.Request.Context(), profileName); err != nil {
		s.logger.Debug("schedule cache invalidation failed",
			zap.String("profile", profileName),
			zap.Error(err),
		)
	}
}
