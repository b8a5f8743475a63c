package postgres

import (
	"errors"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var constraintFields = map[string]string{
	database.ConstraintCandidateEmail:  "email",
	database.ConstraintResumeCandidate: "candidate_id",
}

// translateError maps driver errors onto the domain error set. Unknown errors
// are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &domain.ConstraintViolation{
			Kind:       domain.ConstraintUnique,
			Field:      constraintField(pgErr),
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	case pgForeignKeyViolation:
		return &domain.ConstraintViolation{
			Kind:       domain.ConstraintForeignKey,
			Field:      constraintField(pgErr),
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	}
	return err
}

func constraintField(pgErr *pgconn.PgError) string {
	if field, ok := constraintFields[pgErr.ConstraintName]; ok {
		return field
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return pgErr.ConstraintName
}
