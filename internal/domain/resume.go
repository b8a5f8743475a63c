package domain

import (
	"context"
	"time"
)

type Resume struct {
	ResumeID    int64     `json:"resume_id"`
	CandidateID int64     `json:"candidate_id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ResumeInput struct {
	// CandidateID is not range-checked; an id no candidate owns fails the lock with CandidateNotFoundError.
	CandidateID int64  `json:"candidate_id"`
	Title       string `json:"title" validate:"required,min=1"`
	FileURL     string `json:"file_url" validate:"required,min=1"`
}

// ResumePatch updates title and file_url only. The owning candidate never changes.
type ResumePatch struct {
	Title   *string `json:"title" validate:"omitempty,min=1"`
	FileURL *string `json:"file_url" validate:"omitempty,min=1"`
}

func (p ResumePatch) IsEmpty() bool {
	return p.Title == nil && p.FileURL == nil
}

func (r *Resume) ApplyPatch(p ResumePatch) bool {
	changed := false
	if p.Title != nil && *p.Title != r.Title {
		r.Title = *p.Title
		changed = true
	}
	if p.FileURL != nil && *p.FileURL != r.FileURL {
		r.FileURL = *p.FileURL
		changed = true
	}
	return changed
}

type ResumeRepository interface {
	Repository[Resume]
	// ListByCandidates returns the resumes of the given candidates ordered by resume_id.
	ListByCandidates(ctx context.Context, candidateIDs []int64) ([]Resume, error)
	DeleteByCandidate(ctx context.Context, candidateID int64) (int64, error)
}

type ResumeUsecase interface {
	Create(ctx context.Context, input ResumeInput) (*Resume, error)
	Get(ctx context.Context, id int64) (*Resume, error)
	List(ctx context.Context, page Page) ([]Resume, error)
	Update(ctx context.Context, id int64, patch ResumePatch) (*Resume, error)
	Delete(ctx context.Context, id int64) error
}
