package domain

import (
	"context"
	"strings"
	"time"
)

// Candidate is a person tracked by the system. Email is always stored lowercased.
type Candidate struct {
	CandidateID int64      `json:"candidate_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	Resumes     []Resume   `json:"resumes"`
}

// CandidateInput is the payload accepted on create.
type CandidateInput struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=50,no_emoji"`
	LastName  string  `json:"last_name" validate:"required,min=1,max=50,no_emoji"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// CandidatePatch carries a partial update. Nil fields are left untouched.
type CandidatePatch struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=50,no_emoji"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=50,no_emoji"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// IsEmpty reports whether the patch supplies no field at all.
func (p CandidatePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil
}

// NormalizeEmail is applied before every compare, lookup and persist of an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewCandidate builds an unsaved candidate from validated input.
func NewCandidate(in CandidateInput) *Candidate {
	return &Candidate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     NormalizeEmail(in.Email),
		Phone:     in.Phone,
		Resumes:   []Resume{},
	}
}

// ApplyPatch copies the supplied fields onto c and reports whether anything changed.
func (c *Candidate) ApplyPatch(p CandidatePatch) bool {
	changed := false
	if p.FirstName != nil && *p.FirstName != c.FirstName {
		c.FirstName = *p.FirstName
		changed = true
	}
	if p.LastName != nil && *p.LastName != c.LastName {
		c.LastName = *p.LastName
		changed = true
	}
	if p.Email != nil {
		if email := NormalizeEmail(*p.Email); email != c.Email {
			c.Email = email
			changed = true
		}
	}
	if p.Phone != nil && (c.Phone == nil || *c.Phone != *p.Phone) {
		phone := *p.Phone
		c.Phone = &phone
		changed = true
	}
	return changed
}

type CandidateRepository interface {
	Repository[Candidate]
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	// Lock takes a row lock on the candidate for the rest of the enclosing transaction.
	Lock(ctx context.Context, id int64, mode LockMode) error
	Count(ctx context.Context) (int64, error)
	// ListAfter returns up to limit candidates with candidate_id > afterID, in id order.
	ListAfter(ctx context.Context, afterID int64, limit int) ([]Candidate, error)
}

type CandidateUsecase interface {
	Create(ctx context.Context, input CandidateInput) (*Candidate, error)
	Get(ctx context.Context, id int64) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	List(ctx context.Context, page Page) ([]Candidate, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, patch CandidatePatch) (*Candidate, error)
	Delete(ctx context.Context, id int64) error
}
