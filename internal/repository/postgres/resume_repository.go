package postgres

import (
	"context"
	"fmt"

	"go-candidate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const resumeColumns = `resume_id, candidate_id, title, file_url, uploaded_at`

type resumeRepository struct {
	db Querier
}

func NewResumeRepository(db Querier) domain.ResumeRepository {
	return &resumeRepository{db: db}
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var r domain.Resume
	if err := row.Scan(&r.ResumeID, &r.CandidateID, &r.Title, &r.FileURL, &r.UploadedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *resumeRepository) collect(rows pgx.Rows) ([]domain.Resume, error) {
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resumes = append(resumes, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return resumes, nil
}

func (r *resumeRepository) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE resume_id = $1`
	res, err := scanResume(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

func (r *resumeRepository) List(ctx context.Context, offset, limit int) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY resume_id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", translateError(err))
	}
	return r.collect(rows)
}

func (r *resumeRepository) ListByCandidates(ctx context.Context, candidateIDs []int64) ([]domain.Resume, error) {
	if len(candidateIDs) == 0 {
		return []domain.Resume{}, nil
	}
	query := `SELECT ` + resumeColumns + ` FROM resumes
              WHERE candidate_id = ANY($1::bigint[])
              ORDER BY resume_id ASC`
	rows, err := r.db.Query(ctx, query, pq.Array(candidateIDs))
	if err != nil {
		return nil, fmt.Errorf("list resumes by candidates: %w", translateError(err))
	}
	return r.collect(rows)
}

func (r *resumeRepository) Create(ctx context.Context, res *domain.Resume) error {
	query := `INSERT INTO resumes (candidate_id, title, file_url)
              VALUES ($1, $2, $3)
              RETURNING resume_id, uploaded_at`
	err := r.db.QueryRow(ctx, query, res.CandidateID, res.Title, res.FileURL).Scan(&res.ResumeID, &res.UploadedAt)
	return translateError(err)
}

func (r *resumeRepository) Update(ctx context.Context, res *domain.Resume) error {
	tag, err := r.db.Exec(ctx, `UPDATE resumes SET title = $1, file_url = $2 WHERE resume_id = $3`,
		res.Title, res.FileURL, res.ResumeID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *resumeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE resume_id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *resumeRepository) DeleteByCandidate(ctx context.Context, candidateID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}
