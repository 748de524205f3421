package notify

import (
	"fmt"
	"strings"

	"interview-tracker/internal/civiltime"
	"interview-tracker/internal/models"
)

// FormatReminder renders one upcoming interview for Telegram.
func FormatReminder(s *models.Schedule) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*Upcoming interview: %s - %s*\n\n", s.CompanyName, s.RoleName))
	sb.WriteString(fmt.Sprintf("Profile: %s\n", s.ProfileName))
	sb.WriteString(fmt.Sprintf("When (CET): %s\n", s.InterviewDatetime))

	if iran := civiltime.TehranTime(s.InterviewDatetime); iran != "-" {
		sb.WriteString(fmt.Sprintf("When (Iran): %s\n", iran))
	}

	if s.Duration != "" {
		sb.WriteString(fmt.Sprintf("Duration: %s\n", s.Duration))
	}

	if s.InterviewStage != "" {
		sb.WriteString(fmt.Sprintf("Stage: %s\n", s.InterviewStage))
	}

	if s.Assignee != "" {
		sb.WriteString(fmt.Sprintf("Assignee: %s\n", s.Assignee))
	}

	if s.InterviewLink != "" {
		sb.WriteString(fmt.Sprintf("\n[Join interview](%s)", s.InterviewLink))
	}

	return sb.String()
}
