package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuerier struct{}

func (stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func (stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestStoreRepositoriesShareQuerier(t *testing.T) {
	q := stubQuerier{}
	s := &store{db: q, inTx: true}

	candidates, ok := s.Candidates().(*candidateRepository)
	require.True(t, ok)
	assert.Equal(t, Querier(q), candidates.db)

	resumes, ok := s.Resumes().(*resumeRepository)
	require.True(t, ok)
	assert.Equal(t, Querier(q), resumes.db)
}
