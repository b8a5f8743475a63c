//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/postgres"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/audit"
	"go-candidate-backend/pkg/database"
	"go-candidate-backend/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container with the schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("candidates"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPostgresConnection(ctx, database.PoolConfig{URL: connStr, MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	// Second run must be a no-op.
	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func strPtr(s string) *string { return &s }

func TestPostgresStore(t *testing.T) {
	pool := setupTestDB(t)
	store := postgres.NewStore(pool)
	ctx := context.Background()

	v := validation.New()
	candidates := usecase.NewCandidateUsecase(store, v, audit.Nop())
	resumes := usecase.NewResumeUsecase(store, v, audit.Nop())

	t.Run("Should normalize email and keep updated_at null on create", func(t *testing.T) {
		c, err := candidates.Create(ctx, domain.CandidateInput{FirstName: "John", LastName: "Doe", Email: "John@Ex.com"})
		require.NoError(t, err)
		assert.Equal(t, "john@ex.com", c.Email)
		assert.Nil(t, c.UpdatedAt)
		assert.NotZero(t, c.CandidateID)

		found, err := candidates.GetByEmail(ctx, "JOHN@EX.COM")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, c.CandidateID, found.CandidateID)
	})

	t.Run("Should surface unique violations from the store", func(t *testing.T) {
		c := &domain.Candidate{FirstName: "A", LastName: "B", Email: "dup@ex.com"}
		require.NoError(t, store.Candidates().Create(ctx, c))

		again := &domain.Candidate{FirstName: "C", LastName: "D", Email: "dup@ex.com"}
		err := store.Candidates().Create(ctx, again)
		assert.True(t, domain.IsConstraintViolation(err, domain.ConstraintUnique, "email"), "got %v", err)
	})

	t.Run("Should surface foreign key violations from the store", func(t *testing.T) {
		err := store.Resumes().Create(ctx, &domain.Resume{CandidateID: 999999, Title: "T", FileURL: "http://x/r.pdf"})
		assert.True(t, domain.IsConstraintViolation(err, domain.ConstraintForeignKey, "candidate_id"), "got %v", err)
	})

	t.Run("Should let exactly one concurrent create win", func(t *testing.T) {
		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := candidates.Create(ctx, domain.CandidateInput{FirstName: "Race", LastName: "Car", Email: "Race@Ex.com"})
				mu.Lock()
				defer mu.Unlock()
				var exists *domain.EmailAlreadyExistsError
				switch {
				case err == nil:
					succeeded++
				case errors.As(err, &exists):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicts)
	})

	t.Run("Should cascade resumes on candidate delete", func(t *testing.T) {
		c, err := candidates.Create(ctx, domain.CandidateInput{FirstName: "Jane", LastName: "Smith", Email: "jane@ex.com"})
		require.NoError(t, err)
		r1, err := resumes.Create(ctx, domain.ResumeInput{CandidateID: c.CandidateID, Title: "Dev", FileURL: "http://x/1.pdf"})
		require.NoError(t, err)
		r2, err := resumes.Create(ctx, domain.ResumeInput{CandidateID: c.CandidateID, Title: "PM", FileURL: "http://x/2.pdf"})
		require.NoError(t, err)

		got, err := candidates.Get(ctx, c.CandidateID)
		require.NoError(t, err)
		require.Len(t, got.Resumes, 2)
		assert.Equal(t, r1.ResumeID, got.Resumes[0].ResumeID)

		require.NoError(t, candidates.Delete(ctx, c.CandidateID))

		var notFound *domain.CandidateNotFoundError
		_, err = candidates.Get(ctx, c.CandidateID)
		assert.ErrorAs(t, err, &notFound)

		var resumeMissing *domain.ResumeNotFoundError
		_, err = resumes.Get(ctx, r2.ResumeID)
		assert.ErrorAs(t, err, &resumeMissing)
	})

	t.Run("Should set updated_at and keep other fields on partial update", func(t *testing.T) {
		c, err := candidates.Create(ctx, domain.CandidateInput{FirstName: "Before", LastName: "Last", Email: "patch@ex.com", Phone: strPtr("5551234567")})
		require.NoError(t, err)

		updated, err := candidates.Update(ctx, c.CandidateID, domain.CandidatePatch{FirstName: strPtr("After")})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.FirstName)
		assert.Equal(t, "Last", updated.LastName)
		assert.Equal(t, "patch@ex.com", updated.Email)
		require.NotNil(t, updated.Phone)
		assert.Equal(t, "5551234567", *updated.Phone)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("Should page by primary key", func(t *testing.T) {
		all, err := candidates.List(ctx, domain.Page{Skip: 0, Limit: 1000})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 3)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].CandidateID, all[i].CandidateID)
		}

		page, err := candidates.List(ctx, domain.Page{Skip: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, all[1].CandidateID, page[0].CandidateID)

		total, err := candidates.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(all)), total)

		after, err := store.Candidates().ListAfter(ctx, all[0].CandidateID, 1)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, all[1].CandidateID, after[0].CandidateID)
	})

	t.Run("Should store long resume urls and free-form phones", func(t *testing.T) {
		c, err := candidates.Create(ctx, domain.CandidateInput{FirstName: "Long", LastName: "Url", Email: "long@ex.com", Phone: strPtr("555-1234 ext 9")})
		require.NoError(t, err)

		url := "https://bucket.s3.amazonaws.com/cv.pdf?X-Amz-Signature=" + strings.Repeat("f", 600)
		r, err := resumes.Create(ctx, domain.ResumeInput{CandidateID: c.CandidateID, Title: "Signed", FileURL: url})
		require.NoError(t, err)
		assert.Equal(t, url, r.FileURL)
	})

	t.Run("Should roll back the whole unit of work on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithinTx(ctx, func(tx domain.Store) error {
			c := &domain.Candidate{FirstName: "Ghost", LastName: "Row", Email: "ghost@ex.com"}
			if err := tx.Candidates().Create(ctx, c); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = store.Candidates().GetByEmail(ctx, "ghost@ex.com")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}
