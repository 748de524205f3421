package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the closed set of schedule states.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusScheduled Status = "scheduled"
	StatusFailed    Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusScheduled, StatusFailed:
		return Status(s), nil
	case "":
		return StatusWaiting, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Action is the closed set of user-initiated schedule transitions.
type Action string

const (
	ActionInvoke Action = "invoke"
	ActionPassed Action = "passed"
	ActionFailed Action = "failed"
	ActionDone   Action = "done"
	ActionEdit   Action = "edit"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionInvoke, ActionPassed, ActionFailed, ActionDone, ActionEdit:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// ScheduleKey is the natural identity of a schedule. No surrogate key exists;
// re-submitting the same key updates the stored row in place.
type ScheduleKey struct {
	ProfileName string `json:"profile_name"`
	CompanyName string `json:"company_name"`
	RoleName    string `json:"role_name"`
}

func (k ScheduleKey) String() string {
	return k.ProfileName + "/" + k.CompanyName + "/" + k.RoleName
}

// Schedule is the interview-tracking record for one application.
type Schedule struct {
	ProfileName string `db:"profile_name" json:"profile_name"`
	CompanyName string `db:"company_name" json:"company_name"`
	RoleName    string `db:"role_name" json:"role_name"`

	Link              string     `db:"link" json:"link"`
	ResumeID          string     `db:"resumeid" json:"resumeid"`
	InterviewLink     string     `db:"interview_link" json:"interview_link"`
	InterviewDatetime string     `db:"interview_datetime" json:"interview_datetime"`
	Duration          string     `db:"duration" json:"duration"`
	InterviewStage    string     `db:"interview_stage" json:"interview_stage"`
	NextSteps         string     `db:"next_steps" json:"next_steps"`
	Assignee          string     `db:"assignee" json:"assignee"`
	Status            Status     `db:"status" json:"status"`
	PreviousSteps     StringList `db:"previous_steps" json:"previous_steps"`
	Passed            bool       `db:"passed" json:"passed"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (s *Schedule) Key() ScheduleKey {
	return ScheduleKey{
		ProfileName: s.ProfileName,
		CompanyName: s.CompanyName,
		RoleName:    s.RoleName,
	}
}

// PushStage records the current stage into the history before a transition
// overwrites it. Empty stages and immediate repeats are not recorded.
func (s *Schedule) PushStage() {
	prior := s.InterviewStage
	if prior == "" {
		return
	}
	if n := len(s.PreviousSteps); n > 0 && s.PreviousSteps[n-1] == prior {
		return
	}
	s.PreviousSteps = append(s.PreviousSteps, prior)
}

// DisplaySteps is the de-duplicated stage history used for rendering. The
// stored history keeps duplicates; display collapses them and drops the
// current stage.
func (s *Schedule) DisplaySteps() []string {
	seen := make(map[string]bool, len(s.PreviousSteps))
	out := make([]string, 0, len(s.PreviousSteps))
	for _, step := range s.PreviousSteps {
		if step == s.InterviewStage || seen[step] {
			continue
		}
		seen[step] = true
		out = append(out, step)
	}
	return out
}

// StringList stores an ordered list of labels as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(bytes, (*[]string)(l))
}
