// Package seed loads a small sample data set through the usecases so every
// normal invariant applies to it.
package seed

import (
	"context"
	"fmt"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/logger"
)

type sampleCandidate struct {
	input   domain.CandidateInput
	resumes []domain.ResumeInput
}

func phone(s string) *string { return &s }

var samples = []sampleCandidate{
	{
		input: domain.CandidateInput{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: phone("1234567890")},
		resumes: []domain.ResumeInput{
			{Title: "Software Developer Resume", FileURL: "http://example.com/resumes/johndoe_dev.pdf"},
			{Title: "Project Manager Resume", FileURL: "http://example.com/resumes/johndoe_pm.pdf"},
		},
	},
	{
		input: domain.CandidateInput{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: phone("9876543210")},
		resumes: []domain.ResumeInput{
			{Title: "UX Designer Resume", FileURL: "http://example.com/resumes/janesmith_ux.pdf"},
		},
	},
	{
		input: domain.CandidateInput{FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@example.com", Phone: phone("5551234567")},
		resumes: []domain.ResumeInput{
			{Title: "Data Scientist Resume", FileURL: "http://example.com/resumes/bobjohnson_ds.pdf"},
		},
	},
}

type Result struct {
	Skipped    bool
	Candidates int
	Resumes    int
}

// Run inserts the sample data unless at least one candidate already exists.
func Run(ctx context.Context, candidates domain.CandidateUsecase, resumes domain.ResumeUsecase) (Result, error) {
	total, err := candidates.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("count candidates: %w", err)
	}
	if total > 0 {
		logger.Log.Warn("Database already contains data. Seeding skipped.", "candidates", total)
		return Result{Skipped: true}, nil
	}

	var res Result
	for _, sample := range samples {
		c, err := candidates.Create(ctx, sample.input)
		if err != nil {
			return res, fmt.Errorf("seed candidate %s: %w", sample.input.Email, err)
		}
		res.Candidates++

		for _, in := range sample.resumes {
			in.CandidateID = c.CandidateID
			if _, err := resumes.Create(ctx, in); err != nil {
				return res, fmt.Errorf("seed resume %q: %w", in.Title, err)
			}
			res.Resumes++
		}
	}

	logger.Log.Info("Database seeded", "candidates", res.Candidates, "resumes", res.Resumes)
	return res, nil
}
