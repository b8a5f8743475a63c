package seed

import (
	"context"
	"testing"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/memory"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	v := validation.New()
	candidates := usecase.NewCandidateUsecase(store, v, nil)
	resumes := usecase.NewResumeUsecase(store, v, nil)

	t.Run("Should seed an empty store", func(t *testing.T) {
		res, err := Run(ctx, candidates, resumes)
		require.NoError(t, err)
		assert.Equal(t, Result{Candidates: 3, Resumes: 4}, res)

		john, err := candidates.GetByEmail(ctx, "john.doe@example.com")
		require.NoError(t, err)
		require.NotNil(t, john)
		assert.Len(t, john.Resumes, 2)
	})

	t.Run("Should skip when data exists", func(t *testing.T) {
		res, err := Run(ctx, candidates, resumes)
		require.NoError(t, err)
		assert.True(t, res.Skipped)

		all, err := candidates.List(ctx, domain.DefaultPage())
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
