package models

import "time"

// Application is one applied-job record: a profile applied to a role at a
// company on a given date with a specific resume. Re-applying to the same
// role on the same day overwrites the link and resume reference.
type Application struct {
	ProfileName string    `db:"profile_name" json:"profile_name"`
	AppliedDate string    `db:"applied_date" json:"applied_date"` // YYYY-MM-DD
	CompanyName string    `db:"company_name" json:"company_name"`
	RoleName    string    `db:"role_name" json:"role_name"`
	Link        string    `db:"link" json:"link"`
	ResumeID    string    `db:"resumeid" json:"resumeid"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
