package postgres

import (
	"context"
	"fmt"
	"time"

	"interview-tracker/internal/models"

	"go.uber.org/zap"
)

// UpsertApplication records an applied job. Re-applying to the same role on
// the same day overwrites the link and resume reference.
func (s *Store) UpsertApplication(ctx context.Context, app *models.Application) error {
	app.CreatedAt = time.Now()

	_, err := s.sess.
		InsertBySql(`
			INSERT INTO applications (profile_name, applied_date, company_name, role_name, link, resumeid, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (profile_name, applied_date, company_name, role_name)
			DO UPDATE SET link = EXCLUDED.link, resumeid = EXCLUDED.resumeid`,
			app.ProfileName, app.AppliedDate, app.CompanyName, app.RoleName,
			app.Link, app.ResumeID, app.CreatedAt).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to upsert application",
			zap.String("profile", app.ProfileName),
			zap.String("company", app.CompanyName),
			zap.String("role", app.RoleName),
			zap.Error(err),
		)
		return fmt.Errorf("upsert application: %w", err)
	}

	s.logger.Info("application saved",
		zap.String("profile", app.ProfileName),
		zap.String("company", app.CompanyName),
		zap.String("role", app.RoleName),
	)

	return nil
}

// ListApplications returns applied jobs for a profile, optionally narrowed to
// one applied date, ordered by date then company.
func (s *Store) ListApplications(ctx context.Context, profileName, date string) ([]models.Application, error) {
	stmt := s.sess.
		Select("*").
		From("applications").
		Where("profile_name = ?", profileName).
		OrderBy("applied_date").
		OrderBy("company_name")

	if date != "" {
		stmt = stmt.Where("applied_date = ?", date)
	}

	var apps []models.Application
	if _, err := stmt.LoadContext(ctx, &apps); err != nil {
		s.logger.Error("failed to list applications",
			zap.String("profile", profileName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}
