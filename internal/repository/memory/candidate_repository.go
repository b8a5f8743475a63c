package memory

import (
	"context"
	"sort"
	"time"

	"go-candidate-backend/internal/domain"
)

type candidateRepository struct {
	run func(func(*state) error) error
	now func() time.Time
}

// detach copies pointer fields so callers never share memory with the store.
func detach(c domain.Candidate) domain.Candidate {
	if c.Phone != nil {
		phone := *c.Phone
		c.Phone = &phone
	}
	if c.UpdatedAt != nil {
		at := *c.UpdatedAt
		c.UpdatedAt = &at
	}
	c.Resumes = []domain.Resume{}
	return c
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	var out domain.Candidate
	err := r.run(func(s *state) error {
		c, ok := s.candidates[id]
		if !ok {
			return domain.ErrRecordNotFound
		}
		out = detach(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	var out domain.Candidate
	err := r.run(func(s *state) error {
		id, ok := s.emails[domain.NormalizeEmail(email)]
		if !ok {
			return domain.ErrRecordNotFound
		}
		out = detach(s.candidates[id])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *candidateRepository) List(ctx context.Context, offset, limit int) ([]domain.Candidate, error) {
	var out []domain.Candidate
	err := r.run(func(s *state) error {
		all := make([]domain.Candidate, 0, len(s.candidates))
		for _, c := range s.candidates {
			all = append(all, detach(c))
		}
		sort.Slice(all, func(i, j int) bool { return all[i].CandidateID < all[j].CandidateID })
		out = page(all, offset, limit)
		return nil
	})
	return out, err
}

func (r *candidateRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.run(func(s *state) error {
		total = int64(len(s.candidates))
		return nil
	})
	return total, err
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	return r.run(func(s *state) error {
		email := domain.NormalizeEmail(c.Email)
		if _, taken := s.emails[email]; taken {
			return uniqueEmailViolation()
		}
		s.nextCandidateID++
		c.CandidateID = s.nextCandidateID
		c.Email = email
		c.CreatedAt = r.now()
		c.UpdatedAt = nil
		if c.Resumes == nil {
			c.Resumes = []domain.Resume{}
		}
		s.candidates[c.CandidateID] = detach(*c)
		s.emails[email] = c.CandidateID
		return nil
	})
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	return r.run(func(s *state) error {
		current, ok := s.candidates[c.CandidateID]
		if !ok {
			return domain.ErrRecordNotFound
		}
		email := domain.NormalizeEmail(c.Email)
		if owner, taken := s.emails[email]; taken && owner != c.CandidateID {
			return uniqueEmailViolation()
		}
		now := r.now()
		c.Email = email
		c.CreatedAt = current.CreatedAt
		c.UpdatedAt = &now

		delete(s.emails, current.Email)
		s.emails[email] = c.CandidateID
		s.candidates[c.CandidateID] = detach(*c)
		return nil
	})
}

// Delete removes the candidate and, like ON DELETE CASCADE, its resumes.
func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(s *state) error {
		c, ok := s.candidates[id]
		if !ok {
			return domain.ErrRecordNotFound
		}
		for rid, res := range s.resumes {
			if res.CandidateID == id {
				delete(s.resumes, rid)
			}
		}
		delete(s.emails, c.Email)
		delete(s.candidates, id)
		return nil
	})
}

// Lock only checks existence; transactions are already serialized.
func (r *candidateRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.Candidate, error) {
	var out []domain.Candidate
	err := r.run(func(s *state) error {
		all := make([]domain.Candidate, 0, len(s.candidates))
		for id, c := range s.candidates {
			if id > afterID {
				all = append(all, detach(c))
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].CandidateID < all[j].CandidateID })
		out = page(all, 0, limit)
		return nil
	})
	return out, err
}

func (r *candidateRepository) Lock(ctx context.Context, id int64, mode domain.LockMode) error {
	return r.run(func(s *state) error {
		if _, ok := s.candidates[id]; !ok {
			return domain.ErrRecordNotFound
		}
		return nil
	})
}
