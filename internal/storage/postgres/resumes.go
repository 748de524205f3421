package postgres

import (
	"context"
	"fmt"
	"time"

	"interview-tracker/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveResume stores a resume document verbatim and returns its minted ID.
func (s *Store) SaveResume(ctx context.Context, body models.RawJSON) (string, error) {
	record := models.ResumeRecord{
		ID:        uuid.NewString(),
		Body:      body,
		CreatedAt: time.Now(),
	}

	_, err := s.sess.
		InsertInto("resumes").
		Columns("id", "body", "created_at").
		Record(&record).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save resume", zap.Error(err))
		return "", fmt.Errorf("save resume: %w", err)
	}

	s.logger.Info("resume saved", zap.String("resume_id", record.ID))
	return record.ID, nil
}

// GetResume loads a stored resume by ID; absence is (nil, nil).
func (s *Store) GetResume(ctx context.Context, id string) (*models.ResumeRecord, error) {
	var record models.ResumeRecord

	err := s.sess.
		Select("*").
		From("resumes").
		Where("id = ?", id).
		LoadOneContext(ctx, &record)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get resume",
			zap.String("resume_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get resume: %w", err)
	}

	return &record, nil
}
