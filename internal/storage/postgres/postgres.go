package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sess := conn.NewSession(nil)

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   sess,
		logger: logger,
	}, nil
}

// NewWithSession wires the store onto an existing dbr session. Tests use it
// to run against a mocked connection.
func NewWithSession(sess *dbr.Session, logger *zap.Logger) *Store {
	return &Store{
		sess:   sess,
		logger: logger,
	}
}

func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) Session() *dbr.Session {
	return s.sess
}

// EnsureSchema creates the tables on startup when they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.sess.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schedules (
	profile_name        TEXT NOT NULL,
	company_name        TEXT NOT NULL,
	role_name           TEXT NOT NULL,
	link                TEXT NOT NULL DEFAULT '',
	resumeid            TEXT NOT NULL DEFAULT '',
	interview_link      TEXT NOT NULL DEFAULT '',
	interview_datetime  TEXT NOT NULL DEFAULT '',
	duration            TEXT NOT NULL DEFAULT '',
	interview_stage     TEXT NOT NULL DEFAULT '',
	next_steps          TEXT NOT NULL DEFAULT '',
	assignee            TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL DEFAULT 'waiting',
	previous_steps      JSONB NOT NULL DEFAULT '[]',
	passed              BOOLEAN NOT NULL DEFAULT FALSE,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (profile_name, company_name, role_name)
);

CREATE TABLE IF NOT EXISTS applications (
	profile_name  TEXT NOT NULL,
	applied_date  TEXT NOT NULL,
	company_name  TEXT NOT NULL,
	role_name     TEXT NOT NULL,
	link          TEXT NOT NULL DEFAULT '',
	resumeid      TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (profile_name, applied_date, company_name, role_name)
);

CREATE TABLE IF NOT EXISTS resumes (
	id          TEXT PRIMARY KEY,
	body        JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
