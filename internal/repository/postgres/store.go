package postgres

import (
	"context"
	"fmt"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is implemented by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type store struct {
	pool *pgxpool.Pool
	db   Querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) domain.Store {
	return &store{pool: pool, db: pool}
}

func (s *store) Candidates() domain.CandidateRepository {
	return NewCandidateRepository(s.db)
}

func (s *store) Resumes() domain.ResumeRepository {
	return NewResumeRepository(s.db)
}

func (s *store) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// No-op once committed; also covers panics inside fn.
	defer tx.Rollback(ctx)

	if err := fn(&store{pool: s.pool, db: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
