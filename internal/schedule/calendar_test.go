package schedule

import (
	"testing"
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	schedules := []models.Schedule{
		{
			ProfileName:       "alice",
			CompanyName:       "Acme",
			RoleName:          "Backend Engineer",
			Status:            models.StatusScheduled,
			InterviewDatetime: "2025-03-10 14:30:00 CET",
			Duration:          "30 min",
		},
		{
			ProfileName:       "alice",
			CompanyName:       "Globex",
			RoleName:          "SRE",
			Status:            models.StatusWaiting,
			InterviewDatetime: "TBD", // unusable, skipped
		},
		{
			ProfileName:       "alice",
			CompanyName:       "Initech",
			RoleName:          "Platform Engineer",
			Status:            models.StatusFailed,
			InterviewDatetime: "2025-03-11 09:00:00 CEST",
			Duration:          "", // defaults to an hour
		},
	}

	events := Events(schedules)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Acme - Backend Engineer", first.Title)
	assert.Equal(t, "green", first.Color)
	assert.Equal(t, 30*time.Minute, first.End.Sub(first.Start))
	assert.True(t, first.Start.Equal(time.Date(2025, 3, 10, 14, 30, 0, 0, civiltime.CET)))
	require.NotNil(t, first.Schedule)
	assert.Equal(t, "Acme", first.Schedule.CompanyName)

	second := events[1]
	assert.Equal(t, "red", second.Color)
	assert.Equal(t, time.Hour, second.End.Sub(second.Start))
}

func TestEvents_CarriesDisplaySteps(t *testing.T) {
	schedules := []models.Schedule{
		{
			CompanyName:       "Acme",
			RoleName:          "Backend Engineer",
			Status:            models.StatusScheduled,
			InterviewDatetime: "2025-03-10 14:30:00 CET",
			InterviewStage:    "Offer",
			PreviousSteps:     models.StringList{"Intro", "Technical", "Intro", "Offer"},
		},
	}

	events := Events(schedules)
	require.Len(t, events, 1)

	// The event exposes the collapsed history without the current stage.
	assert.Equal(t, []string{"Intro", "Technical"}, events[0].Steps)
}

func TestEventColor(t *testing.T) {
	assert.Equal(t, "green", EventColor(models.StatusScheduled))
	assert.Equal(t, "yellow", EventColor(models.StatusWaiting))
	assert.Equal(t, "red", EventColor(models.StatusFailed))
	assert.Equal(t, "gray", EventColor(models.Status("bogus")))
}

func TestDraft(t *testing.T) {
	slot := time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC)

	draft := Draft("alice", slot)

	assert.Equal(t, "alice", draft.ProfileName)
	assert.Equal(t, models.StatusScheduled, draft.Status)
	assert.Equal(t, "2025-03-10T14:30", draft.InterviewDatetime)
	assert.Equal(t, "60", draft.Duration)
	assert.Empty(t, draft.PreviousSteps)
}
