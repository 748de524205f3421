package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

var scheduleColumns = []string{
	"profile_name", "company_name", "role_name",
	"link", "resumeid", "interview_link", "interview_datetime",
	"duration", "interview_stage", "next_steps", "assignee",
	"status", "previous_steps", "passed",
}

// ErrScheduleNotFound is returned by DeleteSchedule when no row matches the
// key. Point lookups report absence as (nil, nil) instead.
var ErrScheduleNotFound = fmt.Errorf("schedule not found")

func (s *Store) GetSchedule(ctx context.Context, key models.ScheduleKey) (*models.Schedule, error) {
	var schedule models.Schedule

	err := s.sess.
		Select("*").
		From("schedules").
		Where("profile_name = ? AND company_name = ? AND role_name = ?",
			key.ProfileName, key.CompanyName, key.RoleName).
		LoadOneContext(ctx, &schedule)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get schedule",
			zap.String("key", key.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return &schedule, nil
}

func (s *Store) InsertSchedule(ctx context.Context, sched *models.Schedule) error {
	now := time.Now()
	sched.CreatedAt = now
	sched.UpdatedAt = now

	_, err := s.sess.
		InsertInto("schedules").
		Columns(append(scheduleColumns, "created_at", "updated_at")...).
		Record(sched).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to insert schedule",
			zap.String("key", sched.Key().String()),
			zap.Error(err),
		)
		return fmt.Errorf("insert schedule: %w", err)
	}

	s.logger.Info("schedule created", zap.String("key", sched.Key().String()))
	return nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sched *models.Schedule) error {
	sched.UpdatedAt = time.Now()

	_, err := s.sess.
		Update("schedules").
		Set("link", sched.Link).
		Set("resumeid", sched.ResumeID).
		Set("interview_link", sched.InterviewLink).
		Set("interview_datetime", sched.InterviewDatetime).
		Set("duration", sched.Duration).
		Set("interview_stage", sched.InterviewStage).
		Set("next_steps", sched.NextSteps).
		Set("assignee", sched.Assignee).
		Set("status", sched.Status).
		Set("previous_steps", sched.PreviousSteps).
		Set("passed", sched.Passed).
		Set("updated_at", sched.UpdatedAt).
		Where("profile_name = ? AND company_name = ? AND role_name = ?",
			sched.ProfileName, sched.CompanyName, sched.RoleName).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update schedule",
			zap.String("key", sched.Key().String()),
			zap.Error(err),
		)
		return fmt.Errorf("update schedule: %w", err)
	}

	s.logger.Info("schedule updated", zap.String("key", sched.Key().String()))
	return nil
}

func (s *Store) DeleteSchedule(ctx context.Context, key models.ScheduleKey) error {
	result, err := s.sess.
		DeleteFrom("schedules").
		Where("profile_name = ? AND company_name = ? AND role_name = ?",
			key.ProfileName, key.CompanyName, key.RoleName).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete schedule",
			zap.String("key", key.String()),
			zap.Error(err),
		)
		return fmt.Errorf("delete schedule: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrScheduleNotFound
	}

	s.logger.Info("schedule deleted", zap.String("key", key.String()))
	return nil
}

// ScheduleFilter narrows ListSchedules. Date matches the CET calendar day of
// the parsed interview datetime; assignee matches case-insensitively.
type ScheduleFilter struct {
	ProfileName string
	Date        string // YYYY-MM-DD
	Assignee    string
}

// ListSchedules returns schedules ordered by interview time, soonest first.
// Rows whose datetime cannot be parsed sort last; the datetime column holds
// labelled civil strings, so ordering happens here rather than in SQL.
func (s *Store) ListSchedules(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, error) {
	stmt := s.sess.
		Select("*").
		From("schedules")

	if filter.ProfileName != "" {
		stmt = stmt.Where("profile_name = ?", filter.ProfileName)
	}
	if filter.Assignee != "" {
		stmt = stmt.Where("LOWER(TRIM(assignee)) = ?", strings.ToLower(strings.TrimSpace(filter.Assignee)))
	}

	var schedules []models.Schedule
	if _, err := stmt.LoadContext(ctx, &schedules); err != nil {
		s.logger.Error("failed to list schedules", zap.Error(err))
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	if filter.Date != "" {
		filtered := schedules[:0]
		for _, sched := range schedules {
			if t, ok := civiltime.Parse(sched.InterviewDatetime); ok &&
				t.In(civiltime.CET).Format("2006-01-02") == filter.Date {
				filtered = append(filtered, sched)
			}
		}
		schedules = filtered
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return sortInstant(schedules[i].InterviewDatetime).Before(sortInstant(schedules[j].InterviewDatetime))
	})

	return schedules, nil
}

// sortInstant maps unparseable datetimes to a far-future sentinel so they
// land at the end of the list.
func sortInstant(text string) time.Time {
	if t, ok := civiltime.Parse(text); ok {
		return t
	}
	return time.Date(9998, 12, 31, 23, 59, 59, 0, time.UTC)
}
