package domain

import "context"

// CandidateExportRequest selects the columns and file format of an export.
type CandidateExportRequest struct {
	Columns []string `json:"columns"`
	Format  string   `json:"format"` // "xlsx" or "csv"
}

// ExportableColumns lists every column an export may include, in default order.
var ExportableColumns = []string{
	"candidate_id",
	"first_name",
	"last_name",
	"email",
	"phone",
	"resume_count",
	"resume_titles",
	"created_at",
	"updated_at",
}

type ExportUsecase interface {
	// ExportCandidates returns the file bytes and a suggested file name.
	ExportCandidates(ctx context.Context, req CandidateExportRequest) ([]byte, string, error)
}
