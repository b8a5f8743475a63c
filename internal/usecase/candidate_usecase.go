package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/audit"
	"go-candidate-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	store    domain.Store
	validate *validator.Validate
	audit    audit.Recorder
}

func NewCandidateUsecase(store domain.Store, validate *validator.Validate, recorder audit.Recorder) domain.CandidateUsecase {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &candidateUsecase{
		store:    store,
		validate: validate,
		audit:    recorder,
	}
}

// Create checks the email up front for a friendly fast path, then relies on
// the unique constraint to catch a concurrent insert that won the race.
func (u *candidateUsecase) Create(ctx context.Context, input domain.CandidateInput) (*domain.Candidate, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	candidate := domain.NewCandidate(input)

	existing, err := u.store.Candidates().GetByEmail(ctx, candidate.Email)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("check candidate email: %w", err)
	}
	if existing != nil {
		return nil, u.emailTaken(ctx, candidate.Email)
	}

	err = u.store.WithinTx(ctx, func(tx domain.Store) error {
		return tx.Candidates().Create(ctx, candidate)
	})
	if err != nil {
		if domain.IsConstraintViolation(err, domain.ConstraintUnique, "email") {
			return nil, u.emailTaken(ctx, candidate.Email)
		}
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	u.audit.Record(ctx, audit.Event{
		Action:   audit.ActionCandidateCreated,
		Entity:   "candidate",
		EntityID: candidate.CandidateID,
		Details:  map[string]interface{}{"email": audit.MaskEmail(candidate.Email)},
	})
	return candidate, nil
}

func (u *candidateUsecase) Get(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := u.store.Candidates().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.CandidateNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if err := attachResumes(ctx, u.store.Resumes(), []*domain.Candidate{candidate}); err != nil {
		return nil, err
	}
	return candidate, nil
}

// GetByEmail returns (nil, nil) when nobody owns the email.
func (u *candidateUsecase) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	candidate, err := u.store.Candidates().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate by email: %w", err)
	}
	if err := attachResumes(ctx, u.store.Resumes(), []*domain.Candidate{candidate}); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (u *candidateUsecase) List(ctx context.Context, page domain.Page) ([]domain.Candidate, error) {
	if _, err := domain.NewPage(page.Skip, page.Limit); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	candidates, err := u.store.Candidates().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	refs := make([]*domain.Candidate, len(candidates))
	for i := range candidates {
		refs[i] = &candidates[i]
	}
	if err := attachResumes(ctx, u.store.Resumes(), refs); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (u *candidateUsecase) Count(ctx context.Context) (int64, error) {
	total, err := u.store.Candidates().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return total, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id int64, patch domain.CandidatePatch) (*domain.Candidate, error) {
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	var (
		updated *domain.Candidate
		changed bool
	)
	err := u.store.WithinTx(ctx, func(tx domain.Store) error {
		repo := tx.Candidates()
		if err := repo.Lock(ctx, id, domain.LockUpdate); err != nil {
			return err
		}
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Email != nil {
			email := domain.NormalizeEmail(*patch.Email)
			if email != current.Email {
				other, err := repo.GetByEmail(ctx, email)
				if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
					return err
				}
				if other != nil && other.CandidateID != id {
					return &domain.EmailAlreadyExistsError{Email: email}
				}
			}
		}

		if changed = current.ApplyPatch(patch); changed {
			if err := repo.Update(ctx, current); err != nil {
				return err
			}
		}

		if err := attachResumes(ctx, tx.Resumes(), []*domain.Candidate{current}); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		var taken *domain.EmailAlreadyExistsError
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, &domain.CandidateNotFoundError{ID: id}
		case errors.As(err, &taken):
			return nil, u.emailTaken(ctx, taken.Email)
		case domain.IsConstraintViolation(err, domain.ConstraintUnique, "email") && patch.Email != nil:
			return nil, u.emailTaken(ctx, domain.NormalizeEmail(*patch.Email))
		}
		return nil, fmt.Errorf("update candidate: %w", err)
	}

	if changed {
		u.audit.Record(ctx, audit.Event{
			Action:   audit.ActionCandidateUpdated,
			Entity:   "candidate",
			EntityID: id,
			Details:  map[string]interface{}{"fields": patchedCandidateFields(patch)},
		})
	}
	return updated, nil
}

// Delete removes the candidate and its resumes in one transaction. The row
// lock makes concurrent resume creation for this candidate wait or fail.
func (u *candidateUsecase) Delete(ctx context.Context, id int64) error {
	var removed int64
	err := u.store.WithinTx(ctx, func(tx domain.Store) error {
		if err := tx.Candidates().Lock(ctx, id, domain.LockUpdate); err != nil {
			return err
		}
		n, err := tx.Resumes().DeleteByCandidate(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return tx.Candidates().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return &domain.CandidateNotFoundError{ID: id}
		}
		return fmt.Errorf("delete candidate: %w", err)
	}

	u.audit.Record(ctx, audit.Event{
		Action:   audit.ActionCandidateDeleted,
		Entity:   "candidate",
		EntityID: id,
		Details:  map[string]interface{}{"resumes_removed": removed},
	})
	return nil
}

func (u *candidateUsecase) emailTaken(ctx context.Context, email string) error {
	u.audit.Record(ctx, audit.Event{
		Action:  audit.ActionEmailConflict,
		Entity:  "candidate",
		Details: map[string]interface{}{"email": audit.MaskEmail(email)},
	})
	return &domain.EmailAlreadyExistsError{Email: email}
}

// attachResumes loads the resumes of every candidate with a single query.
func attachResumes(ctx context.Context, repo domain.ResumeRepository, candidates []*domain.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	ids := make([]int64, len(candidates))
	byID := make(map[int64]*domain.Candidate, len(candidates))
	for i, c := range candidates {
		ids[i] = c.CandidateID
		c.Resumes = []domain.Resume{}
		byID[c.CandidateID] = c
	}

	resumes, err := repo.ListByCandidates(ctx, ids)
	if err != nil {
		return fmt.Errorf("load resumes: %w", err)
	}
	for _, r := range resumes {
		if c, ok := byID[r.CandidateID]; ok {
			c.Resumes = append(c.Resumes, r)
		}
	}
	return nil
}

func patchedCandidateFields(p domain.CandidatePatch) []string {
	fields := []string{}
	if p.FirstName != nil {
		fields = append(fields, "first_name")
	}
	if p.LastName != nil {
		fields = append(fields, "last_name")
	}
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if p.Phone != nil {
		fields = append(fields, "phone")
	}
	return fields
}
