package memory

import (
	"context"
	"sync"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/database"
)

// state is one consistent snapshot of every table.
type state struct {
	candidates      map[int64]domain.Candidate
	resumes         map[int64]domain.Resume
	emails          map[string]int64 // email -> candidate_id
	nextCandidateID int64
	nextResumeID    int64
}

func newState() *state {
	return &state{
		candidates: make(map[int64]domain.Candidate),
		resumes:    make(map[int64]domain.Resume),
		emails:     make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := &state{
		candidates:      make(map[int64]domain.Candidate, len(s.candidates)),
		resumes:         make(map[int64]domain.Resume, len(s.resumes)),
		emails:          make(map[string]int64, len(s.emails)),
		nextCandidateID: s.nextCandidateID,
		nextResumeID:    s.nextResumeID,
	}
	for id, cand := range s.candidates {
		c.candidates[id] = cand
	}
	for id, res := range s.resumes {
		c.resumes[id] = res
	}
	for email, id := range s.emails {
		c.emails[email] = id
	}
	return c
}

// Store keeps candidates and resumes in process. Transactions are serialized
// and work on a private copy that replaces the committed state on success,
// so a failed unit of work leaves nothing behind.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) run(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) Candidates() domain.CandidateRepository {
	return &candidateRepository{run: s.run, now: s.clock}
}

func (s *Store) Resumes() domain.ResumeRepository {
	return &resumeRepository{run: s.run, now: s.clock}
}

func (s *Store) clock() time.Time {
	return s.now()
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&txStore{data: work, now: s.now}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// txStore is the view handed to a WithinTx callback. The owning Store's
// mutex is held for its whole lifetime.
type txStore struct {
	data *state
	now  func() time.Time
}

func (t *txStore) run(fn func(*state) error) error {
	return fn(t.data)
}

func (t *txStore) Candidates() domain.CandidateRepository {
	return &candidateRepository{run: t.run, now: t.now}
}

func (t *txStore) Resumes() domain.ResumeRepository {
	return &resumeRepository{run: t.run, now: t.now}
}

func (t *txStore) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return fn(t)
}

func (t *txStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func uniqueEmailViolation() error {
	return &domain.ConstraintViolation{
		Kind:       domain.ConstraintUnique,
		Field:      "email",
		Constraint: database.ConstraintCandidateEmail,
	}
}

func candidateFKViolation() error {
	return &domain.ConstraintViolation{
		Kind:       domain.ConstraintForeignKey,
		Field:      "candidate_id",
		Constraint: database.ConstraintResumeCandidate,
	}
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}
