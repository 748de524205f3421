package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Resume is the structured projection of a stored resume document. The raw
// JSON is persisted verbatim; only the fields the text renderer needs are
// mapped here. Anything absent simply renders as absent.
type Resume struct {
	Name           string             `json:"name"`
	RoleName       string             `json:"role_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	LinkedIn       string             `json:"linkedin"`
	ProfileSummary string             `json:"profile_summary"`
	Skills         string             `json:"skills"`
	Experience     []ResumeExperience `json:"experience"`
	Education      []ResumeEducation  `json:"education"`
}

type ResumeExperience struct {
	Role             string `json:"role"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
	Responsibilities string `json:"responsibilities"`
}

type ResumeEducation struct {
	Degree     string `json:"degree"`
	Category   string `json:"category"`
	University string `json:"university"`
	Location   string `json:"location"`
	FromYear   string `json:"from_year"`
	ToYear     string `json:"to_year"`
}

// ResumeRecord is a stored resume document: opaque JSON body keyed by ID.
type ResumeRecord struct {
	ID        string    `db:"id" json:"id"`
	Body      RawJSON   `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Structured decodes the stored body into the renderer projection.
func (r *ResumeRecord) Structured() (*Resume, error) {
	var resume Resume
	if err := json.Unmarshal(r.Body, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	// The driver owns its buffer and may reuse it after Scan returns.
	*r = append(RawJSON(nil), bytes...)
	return nil
}

func (r RawJSON) MarshalJSON() ([]byte, error) {
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = RawJSON(data)
	return nil
}
