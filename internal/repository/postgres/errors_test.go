package postgres

import (
	"errors"
	"fmt"
	"testing"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	t.Run("Should pass nil through", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("Should map no rows to ErrRecordNotFound", func(t *testing.T) {
		err := translateError(fmt.Errorf("get: %w", pgx.ErrNoRows))
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Should map unique email violation by constraint name", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "candidates_email_key"}
		err := translateError(pgErr)

		var cv *domain.ConstraintViolation
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, domain.ConstraintUnique, cv.Kind)
		assert.Equal(t, "email", cv.Field)
		assert.True(t, domain.IsConstraintViolation(err, domain.ConstraintUnique, "email"))
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("Should map foreign key violation", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23503", ConstraintName: "resumes_candidate_id_fkey"})
		assert.True(t, domain.IsConstraintViolation(err, domain.ConstraintForeignKey, "candidate_id"))
	})

	t.Run("Should fall back to column name for unknown constraints", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23505", ConstraintName: "other_key", ColumnName: "slug"})
		assert.True(t, domain.IsConstraintViolation(err, domain.ConstraintUnique, "slug"))
	})

	t.Run("Should leave unrelated errors untouched", func(t *testing.T) {
		boom := errors.New("connection reset")
		assert.Same(t, boom, translateError(boom))

		syntax := &pgconn.PgError{Code: "42601"}
		var cv *domain.ConstraintViolation
		assert.False(t, errors.As(translateError(syntax), &cv))
	})
}
