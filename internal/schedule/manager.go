// Package schedule owns the schedule lifecycle: the status state machine,
// the stage-history rules, and the calendar projection built on top of the
// stored schedule set.
package schedule

import (
	"context"
	"fmt"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"

	"go.uber.org/zap"
)

// Store is the persistence contract the manager needs. A point lookup for an
// absent key returns (nil, nil); delete on an absent key returns an error.
type Store interface {
	GetSchedule(ctx context.Context, key models.ScheduleKey) (*models.Schedule, error)
	InsertSchedule(ctx context.Context, s *models.Schedule) error
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, key models.ScheduleKey) error
}

// Input carries the form fields accompanying a schedule action. Fields a
// given action does not use are ignored for that action.
type Input struct {
	models.ScheduleKey

	Link              string
	ResumeID          string
	InterviewLink     string
	InterviewDatetime string
	Duration          string
	InterviewStage    string
	NextSteps         string
	Assignee          string
	Status            models.Status
	Passed            bool
}

// ValidationError rejects an action before any store call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InitialStage is the stage a schedule starts in when created from an
// applied-job record.
const InitialStage = "Intro"

// Manager applies user-initiated actions to schedules and persists the
// resulting full-row projection. Every action ends in a single idempotent
// upsert keyed by (profile, company, role); a failed write surfaces to the
// caller unchanged and is never retried here.
type Manager struct {
	store  Store
	logger *zap.Logger
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// Apply runs one action against the currently stored schedule (if any) and
// upserts the result. The returned schedule is the persisted projection.
func (m *Manager) Apply(ctx context.Context, action models.Action, in Input) (*models.Schedule, error) {
	if err := validate(action, in); err != nil {
		return nil, err
	}

	existing, err := m.store.GetSchedule(ctx, in.ScheduleKey)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	next, err := transition(action, existing, in)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		err = m.store.InsertSchedule(ctx, next)
	} else {
		err = m.store.UpdateSchedule(ctx, next)
	}
	if err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}

	m.logger.Info("schedule saved",
		zap.String("key", in.ScheduleKey.String()),
		zap.String("action", string(action)),
		zap.String("status", string(next.Status)),
	)

	return next, nil
}

// Delete removes a schedule by its natural key. A miss is an error so the
// caller can report it.
func (m *Manager) Delete(ctx context.Context, key models.ScheduleKey) error {
	if key.ProfileName == "" || key.CompanyName == "" || key.RoleName == "" {
		return &ValidationError{Msg: "profile, company and role are required"}
	}

	if err := m.store.DeleteSchedule(ctx, key); err != nil {
		return err
	}

	m.logger.Info("schedule deleted", zap.String("key", key.String()))
	return nil
}

func validate(action models.Action, in Input) error {
	if in.CompanyName == "" || in.RoleName == "" {
		return &ValidationError{Msg: "company and role are required"}
	}
	if action == models.ActionInvoke && in.Link == "" {
		return &ValidationError{Msg: "job link is required"}
	}
	return nil
}

// transition computes the next persisted state from the action, the stored
// schedule, and the form fields. It is exhaustive over the action set.
func transition(action models.Action, existing *models.Schedule, in Input) (*models.Schedule, error) {
	next := base(existing, in)

	switch action {
	case models.ActionInvoke:
		next.Status = models.StatusScheduled
		next.Passed = false
		stage := in.InterviewStage
		if stage == "" {
			stage = InitialStage
		}
		setStage(next, stage)
		next.InterviewLink = in.InterviewLink
		next.NextSteps = in.NextSteps
		mergeSchedulingFields(next, existing, in)

	case models.ActionPassed:
		next.Status = models.StatusScheduled
		next.Passed = true
		setStage(next, in.InterviewStage)
		next.InterviewLink = orExisting(in.InterviewLink, existing, func(s *models.Schedule) string { return s.InterviewLink })
		next.NextSteps = in.NextSteps
		mergeSchedulingFields(next, existing, in)

	case models.ActionFailed:
		next.Status = models.StatusFailed
		next.Passed = false
		next.NextSteps = in.NextSteps

	case models.ActionDone:
		next.Status = models.StatusWaiting
		next.Passed = false
		next.NextSteps = in.NextSteps

	case models.ActionEdit:
		next.Status = in.Status
		next.Passed = in.Passed
		setStage(next, in.InterviewStage)
		next.Link = in.Link
		next.ResumeID = in.ResumeID
		next.InterviewLink = in.InterviewLink
		next.NextSteps = in.NextSteps
		next.Assignee = in.Assignee
		next.Duration = in.Duration
		next.InterviewDatetime = normalizeDatetime(in.InterviewDatetime)

	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}

	if next.Status == models.StatusScheduled && next.InterviewDatetime == "" {
		return nil, &ValidationError{Msg: "a scheduled interview requires a datetime"}
	}

	return next, nil
}

// base seeds the next state: the stored row when one exists (so no recorded
// field is lost), otherwise a fresh row from the key and form.
func base(existing *models.Schedule, in Input) *models.Schedule {
	if existing != nil {
		next := *existing
		next.PreviousSteps = append(models.StringList(nil), existing.PreviousSteps...)
		next.Link = orValue(in.Link, existing.Link)
		next.ResumeID = orValue(in.ResumeID, existing.ResumeID)
		return &next
	}

	return &models.Schedule{
		ProfileName: in.ProfileName,
		CompanyName: in.CompanyName,
		RoleName:    in.RoleName,
		Link:        in.Link,
		ResumeID:    in.ResumeID,
		Status:      models.StatusWaiting,
	}
}

// setStage moves the schedule to a new stage, recording the prior one in the
// history first. Setting the same stage again is a no-op for the history.
func setStage(s *models.Schedule, stage string) {
	if s.InterviewStage != "" && s.InterviewStage != stage {
		s.PushStage()
	}
	s.InterviewStage = stage
}

// mergeSchedulingFields applies the meeting fields, keeping stored values
// when the form leaves them blank.
func mergeSchedulingFields(next *models.Schedule, existing *models.Schedule, in Input) {
	if dt := normalizeDatetime(in.InterviewDatetime); dt != "" {
		next.InterviewDatetime = dt
	} else if existing != nil {
		next.InterviewDatetime = existing.InterviewDatetime
	} else {
		next.InterviewDatetime = ""
	}

	next.Duration = orExisting(in.Duration, existing, func(s *models.Schedule) string { return s.Duration })
	next.Assignee = orExisting(in.Assignee, existing, func(s *models.Schedule) string { return s.Assignee })
}

// normalizeDatetime runs form input through the parse→storage pipeline so the
// persisted string is always timezone-qualified. Unusable input degrades to
// empty rather than storing an unzoned string.
func normalizeDatetime(text string) string {
	t, ok := civiltime.Parse(text)
	if !ok {
		return ""
	}
	return civiltime.FormatStorage(t)
}

func orValue(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orExisting(v string, existing *models.Schedule, field func(*models.Schedule) string) string {
	if v != "" {
		return v
	}
	if existing != nil {
		return field(existing)
	}
	return ""
}
