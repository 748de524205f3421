package schedule

import (
	"time"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"
)

// Event is one timed calendar entry projected from a schedule.
type Event struct {
	Title    string           `json:"title"`
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	AllDay   bool             `json:"all_day"`
	Status   models.Status    `json:"status"`
	Color    string           `json:"color"`
	Steps    []string         `json:"steps"`
	Schedule *models.Schedule `json:"schedule"`
}

var statusColors = map[models.Status]string{
	models.StatusScheduled: "green",
	models.StatusWaiting:   "yellow",
	models.StatusFailed:    "red",
}

// EventColor maps a status to its display color; unmapped statuses are gray.
func EventColor(status models.Status) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "gray"
}

// Events projects schedules into calendar events. Schedules without a usable
// interview datetime are skipped; the event spans the interview's duration
// from its parsed start, carries the de-duplicated stage history, and keeps
// the originating schedule for selection.
func Events(schedules []models.Schedule) []Event {
	events := make([]Event, 0, len(schedules))

	for i := range schedules {
		s := &schedules[i]

		start, ok := civiltime.Parse(s.InterviewDatetime)
		if !ok {
			continue
		}

		minutes := civiltime.DurationMinutes(s.Duration)
		events = append(events, Event{
			Title:    s.CompanyName + " - " + s.RoleName,
			Start:    start,
			End:      start.Add(time.Duration(minutes) * time.Minute),
			Status:   s.Status,
			Color:    EventColor(s.Status),
			Steps:    s.DisplaySteps(),
			Schedule: s,
		})
	}

	return events
}

// Draft seeds a new schedule from an empty calendar slot: status scheduled,
// the slot's time, and a one-hour default duration.
func Draft(profileName string, slot time.Time) models.Schedule {
	return models.Schedule{
		ProfileName:       profileName,
		Status:            models.StatusScheduled,
		InterviewDatetime: civiltime.FormatInput(slot),
		Duration:          "60",
		PreviousSteps:     models.StringList{},
	}
}
