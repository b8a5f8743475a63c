package memory

import (
	"context"
	"sort"
	"time"

	"go-candidate-backend/internal/domain"
)

type resumeRepository struct {
	run func(func(*state) error) error
	now func() time.Time
}

func sortedResumes(s *state, keep func(domain.Resume) bool) []domain.Resume {
	out := []domain.Resume{}
	for _, res := range s.resumes {
		if keep(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResumeID < out[j].ResumeID })
	return out
}

func (r *resumeRepository) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	var out domain.Resume
	err := r.run(func(s *state) error {
		res, ok := s.resumes[id]
		if !ok {
			return domain.ErrRecordNotFound
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resumeRepository) List(ctx context.Context, offset, limit int) ([]domain.Resume, error) {
	var out []domain.Resume
	err := r.run(func(s *state) error {
		all := sortedResumes(s, func(domain.Resume) bool { return true })
		out = page(all, offset, limit)
		return nil
	})
	return out, err
}

func (r *resumeRepository) ListByCandidates(ctx context.Context, candidateIDs []int64) ([]domain.Resume, error) {
	wanted := make(map[int64]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		wanted[id] = struct{}{}
	}
	var out []domain.Resume
	err := r.run(func(s *state) error {
		out = sortedResumes(s, func(res domain.Resume) bool {
			_, ok := wanted[res.CandidateID]
			return ok
		})
		return nil
	})
	return out, err
}

func (r *resumeRepository) Create(ctx context.Context, res *domain.Resume) error {
	return r.run(func(s *state) error {
		if _, ok := s.candidates[res.CandidateID]; !ok {
			return candidateFKViolation()
		}
		s.nextResumeID++
		res.ResumeID = s.nextResumeID
		res.UploadedAt = r.now()
		s.resumes[res.ResumeID] = *res
		return nil
	})
}

func (r *resumeRepository) Update(ctx context.Context, res *domain.Resume) error {
	return r.run(func(s *state) error {
		current, ok := s.resumes[res.ResumeID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		current.Title = res.Title
		current.FileURL = res.FileURL
		s.resumes[res.ResumeID] = current
		*res = current
		return nil
	})
}

func (r *resumeRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(s *state) error {
		if _, ok := s.resumes[id]; !ok {
			return domain.ErrRecordNotFound
		}
		delete(s.resumes, id)
		return nil
	})
}

func (r *resumeRepository) DeleteByCandidate(ctx context.Context, candidateID int64) (int64, error) {
	var removed int64
	err := r.run(func(s *state) error {
		for id, res := range s.resumes {
			if res.CandidateID == candidateID {
				delete(s.resumes, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}
