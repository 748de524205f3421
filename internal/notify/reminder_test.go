package notify

import (
	"testing"
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcoming(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, civiltime.CET)
	lead := time.Hour

	mk := func(status models.Status, datetime string) models.Schedule {
		return models.Schedule{
			CompanyName:       "Acme",
			RoleName:          "Backend Engineer",
			Status:            status,
			InterviewDatetime: datetime,
		}
	}

	schedules := []models.Schedule{
		mk(models.StatusScheduled, "2025-03-10 13:30:00 CET"), // inside window
		mk(models.StatusScheduled, "2025-03-10 14:00:00 CET"), // boundary, inclusive
		mk(models.StatusScheduled, "2025-03-10 14:01:00 CET"), // past the lead
		mk(models.StatusScheduled, "2025-03-10 12:59:00 CET"), // already started
		mk(models.StatusWaiting, "2025-03-10 13:30:00 CET"),   // wrong status
		mk(models.StatusScheduled, "TBD"),                     // unusable datetime
	}

	got := Upcoming(schedules, now, lead)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-10 13:30:00 CET", got[0].InterviewDatetime)
	assert.Equal(t, "2025-03-10 14:00:00 CET", got[1].InterviewDatetime)
}

func TestFormatReminder(t *testing.T) {
	s := &models.Schedule{
		ProfileName:       "alice",
		CompanyName:       "Acme",
		RoleName:          "Backend Engineer",
		Status:            models.StatusScheduled,
		InterviewDatetime: "2025-03-10 14:30:00 CET",
		Duration:          "45 min",
		InterviewStage:    "Technical",
		Assignee:          "Bob",
		InterviewLink:     "https://meet.test/abc",
	}

	out := FormatReminder(s)

	assert.Contains(t, out, "*Upcoming interview: Acme - Backend Engineer*")
	assert.Contains(t, out, "Profile: alice")
	assert.Contains(t, out, "When (CET): 2025-03-10 14:30:00 CET")
	assert.Contains(t, out, "When (Iran): 2025-03-10 17:00:00 IRST")
	assert.Contains(t, out, "Duration: 45 min")
	assert.Contains(t, out, "Stage: Technical")
	assert.Contains(t, out, "Assignee: Bob")
	assert.Contains(t, out, "[Join interview](https://meet.test/abc)")
}

func TestFormatReminder_Sparse(t *testing.T) {
	s := &models.Schedule{
		ProfileName:       "alice",
		CompanyName:       "Acme",
		RoleName:          "Backend Engineer",
		InterviewDatetime: "TBD",
	}

	out := FormatReminder(s)

	assert.NotContains(t, out, "When (Iran):")
	assert.NotContains(t, out, "Duration:")
	assert.NotContains(t, out, "Stage:")
	assert.NotContains(t, out, "Join interview")
}
