package domain

import (
	"context"
	"errors"
)

const (
	DefaultPageLimit = 100
)

var ErrInvalidPage = errors.New("skip and limit must be non-negative integers")

// Page selects a window of records ordered by primary key.
type Page struct {
	Skip  int
	Limit int
}

// NewPage validates skip/limit. A zero limit is a valid, empty page.
func NewPage(skip, limit int) (Page, error) {
	if skip < 0 || limit < 0 {
		return Page{}, ErrInvalidPage
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// DefaultPage is skip=0, limit=100.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultPageLimit}
}

type LockMode int

const (
	// LockShare blocks concurrent deletes of the row but not other readers.
	LockShare LockMode = iota
	// LockUpdate excludes every other writer and share-locker of the row.
	LockUpdate
)

// Repository is the capability set every persisted entity exposes.
// Absent rows are reported as ErrRecordNotFound and constraint breaches as
// *ConstraintViolation.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, offset, limit int) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

// Store is the unit-of-work boundary. Repositories obtained from the Store
// passed to a WithinTx callback run inside that transaction; the transaction
// commits when the callback returns nil and rolls back otherwise.
type Store interface {
	Candidates() CandidateRepository
	Resumes() ResumeRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
