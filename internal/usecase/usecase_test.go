package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/memory"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/audit"
	"go-candidate-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Candidates() domain.CandidateRepository {
	return m.Called().Get(0).(domain.CandidateRepository)
}

func (m *MockStore) Resumes() domain.ResumeRepository {
	return m.Called().Get(0).(domain.ResumeRepository)
}

func (m *MockStore) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) List(ctx context.Context, offset, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ListAfter(ctx context.Context, afterID int64, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) Lock(ctx context.Context, id int64, mode domain.LockMode) error {
	return m.Called(ctx, id, mode).Error(0)
}

func (m *MockCandidateRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

// raceWindowStore hides existing rows from the email pre-check, as if a
// concurrent insert committed between the pre-check and our own insert.
type raceWindowStore struct {
	domain.Store
}

func (s raceWindowStore) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx domain.Store) error {
		return fn(raceWindowStore{tx})
	})
}

func (s raceWindowStore) Candidates() domain.CandidateRepository {
	return blindEmailRepo{s.Store.Candidates()}
}

type blindEmailRepo struct {
	domain.CandidateRepository
}

func (blindEmailRepo) GetByEmail(context.Context, string) (*domain.Candidate, error) {
	return nil, domain.ErrRecordNotFound
}

// Helpers

type fixture struct {
	store      *memory.Store
	candidates domain.CandidateUsecase
	resumes    domain.ResumeUsecase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	v := validation.New()
	return fixture{
		store:      store,
		candidates: usecase.NewCandidateUsecase(store, v, audit.Nop()),
		resumes:    usecase.NewResumeUsecase(store, v, audit.Nop()),
	}
}

func strPtr(s string) *string { return &s }

func mustCreateCandidate(t *testing.T, uc domain.CandidateUsecase, first, email string) *domain.Candidate {
	t.Helper()
	c, err := uc.Create(context.Background(), domain.CandidateInput{FirstName: first, LastName: "Doe", Email: email})
	require.NoError(t, err)
	return c
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, 400, appErr.Code)
}
