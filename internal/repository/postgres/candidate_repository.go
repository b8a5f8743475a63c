package postgres

import (
	"context"
	"fmt"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

const candidateColumns = `candidate_id, first_name, last_name, email, phone, created_at, updated_at`

type candidateRepository struct {
	db Querier
}

func NewCandidateRepository(db Querier) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	c := domain.Candidate{Resumes: []domain.Resume{}}
	err := row.Scan(&c.CandidateID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE candidate_id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *candidateRepository) List(ctx context.Context, offset, limit int) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY candidate_id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", translateError(err))
	}
	return collectCandidates(rows)
}

func (r *candidateRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE candidate_id > $1 ORDER BY candidate_id ASC LIMIT $2`
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates after %d: %w", afterID, translateError(err))
	}
	return collectCandidates(rows)
}

func collectCandidates(rows pgx.Rows) ([]domain.Candidate, error) {
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return candidates, nil
}

func (r *candidateRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&total); err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (first_name, last_name, email, phone)
              VALUES ($1, $2, $3, $4)
              RETURNING candidate_id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone).
		Scan(&c.CandidateID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if c.Resumes == nil {
		c.Resumes = []domain.Resume{}
	}
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `UPDATE candidates
              SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
              WHERE candidate_id = $5
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.CandidateID).Scan(&c.UpdatedAt)
	return translateError(err)
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE candidate_id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *candidateRepository) Lock(ctx context.Context, id int64, mode domain.LockMode) error {
	clause := "FOR SHARE"
	if mode == domain.LockUpdate {
		clause = "FOR UPDATE"
	}
	var locked int64
	err := r.db.QueryRow(ctx, `SELECT candidate_id FROM candidates WHERE candidate_id = $1 `+clause, id).Scan(&locked)
	return translateError(err)
}
