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

type resumeUsecase struct {
	store    domain.Store
	validate *validator.Validate
	audit    audit.Recorder
}

func NewResumeUsecase(store domain.Store, validate *validator.Validate, recorder audit.Recorder) domain.ResumeUsecase {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &resumeUsecase{
		store:    store,
		validate: validate,
		audit:    recorder,
	}
}

func (u *resumeUsecase) Create(ctx context.Context, input domain.ResumeInput) (*domain.Resume, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	resume := &domain.Resume{
		CandidateID: input.CandidateID,
		Title:       input.Title,
		FileURL:     input.FileURL,
	}

	err := u.store.WithinTx(ctx, func(tx domain.Store) error {
		// Share lock: a concurrent candidate delete waits for this insert or runs first.
		if err := tx.Candidates().Lock(ctx, input.CandidateID, domain.LockShare); err != nil {
			return err
		}
		return tx.Resumes().Create(ctx, resume)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) ||
			domain.IsConstraintViolation(err, domain.ConstraintForeignKey, "candidate_id") {
			return nil, &domain.CandidateNotFoundError{ID: input.CandidateID}
		}
		return nil, fmt.Errorf("create resume: %w", err)
	}

	u.audit.Record(ctx, audit.Event{
		Action:   audit.ActionResumeCreated,
		Entity:   "resume",
		EntityID: resume.ResumeID,
		Details:  map[string]interface{}{"candidate_id": resume.CandidateID},
	})
	return resume, nil
}

func (u *resumeUsecase) Get(ctx context.Context, id int64) (*domain.Resume, error) {
	resume, err := u.store.Resumes().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.ResumeNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get resume: %w", err)
	}
	return resume, nil
}

func (u *resumeUsecase) List(ctx context.Context, page domain.Page) ([]domain.Resume, error) {
	if _, err := domain.NewPage(page.Skip, page.Limit); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	resumes, err := u.store.Resumes().List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

func (u *resumeUsecase) Update(ctx context.Context, id int64, patch domain.ResumePatch) (*domain.Resume, error) {
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	var (
		updated *domain.Resume
		changed bool
	)
	err := u.store.WithinTx(ctx, func(tx domain.Store) error {
		current, err := tx.Resumes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if changed = current.ApplyPatch(patch); changed {
			if err := tx.Resumes().Update(ctx, current); err != nil {
				return err
			}
		}
		updated = current
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.ResumeNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("update resume: %w", err)
	}

	if changed {
		u.audit.Record(ctx, audit.Event{
			Action:   audit.ActionResumeUpdated,
			Entity:   "resume",
			EntityID: id,
		})
	}
	return updated, nil
}

func (u *resumeUsecase) Delete(ctx context.Context, id int64) error {
	err := u.store.WithinTx(ctx, func(tx domain.Store) error {
		return tx.Resumes().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return &domain.ResumeNotFoundError{ID: id}
		}
		return fmt.Errorf("delete resume: %w", err)
	}

	u.audit.Record(ctx, audit.Event{
		Action:   audit.ActionResumeDeleted,
		Entity:   "resume",
		EntityID: id,
	})
	return nil
}
