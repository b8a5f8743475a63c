package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")

type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
)

// ConstraintViolation is raised by a Store when a write breaks a unique or
// foreign-key constraint. It never leaves the service layer.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Field      string
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s constraint violation on %s", e.Kind, e.Field)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether err carries a violation of the given kind on field.
func IsConstraintViolation(err error, kind ConstraintKind, field string) bool {
	var cv *ConstraintViolation
	if !errors.As(err, &cv) {
		return false
	}
	return cv.Kind == kind && cv.Field == field
}

const EmailSuggestion = "Please use a different email address or try logging in."

type EmailAlreadyExistsError struct {
	Email string
}

func (e *EmailAlreadyExistsError) Error() string {
	return "Email already registered."
}

type CandidateNotFoundError struct {
	ID int64
}

func (e *CandidateNotFoundError) Error() string {
	return fmt.Sprintf("Candidate with ID %d not found.", e.ID)
}

type ResumeNotFoundError struct {
	ID int64
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("Resume with ID %d not found.", e.ID)
}
