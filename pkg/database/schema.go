package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Constraint names are matched by the postgres repository when translating errors.
const (
	ConstraintCandidateEmail  = "candidates_email_key"
	ConstraintResumeCandidate = "resumes_candidate_id_fkey"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		candidate_id BIGSERIAL PRIMARY KEY,
		first_name   VARCHAR(50)  NOT NULL,
		last_name    VARCHAR(50)  NOT NULL,
		email        VARCHAR(255) NOT NULL,
		phone        VARCHAR(20),
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ,
		CONSTRAINT ` + ConstraintCandidateEmail + ` UNIQUE (email),
		CONSTRAINT candidates_email_lower_chk CHECK (email = LOWER(email))
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		resume_id    BIGSERIAL PRIMARY KEY,
		candidate_id BIGINT       NOT NULL,
		title        TEXT         NOT NULL,
		file_url     TEXT         NOT NULL,
		uploaded_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		CONSTRAINT ` + ConstraintResumeCandidate + ` FOREIGN KEY (candidate_id)
			REFERENCES candidates (candidate_id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resumes_candidate_id ON resumes (candidate_id)`,
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
