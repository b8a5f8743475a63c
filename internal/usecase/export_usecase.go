package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const exportBatchSize = 500

type exportUsecase struct {
	store domain.Store
	now   func() time.Time
}

func NewExportUsecase(store domain.Store) domain.ExportUsecase {
	return &exportUsecase{store: store, now: time.Now}
}

var exportHeaders = map[string]string{
	"candidate_id":  "CANDIDATE ID",
	"first_name":    "FIRST NAME",
	"last_name":     "LAST NAME",
	"email":         "EMAIL",
	"phone":         "PHONE",
	"resume_count":  "RESUMES",
	"resume_titles": "RESUME TITLES",
	"created_at":    "CREATED AT",
	"updated_at":    "UPDATED AT",
}

func (u *exportUsecase) ExportCandidates(ctx context.Context, req domain.CandidateExportRequest) ([]byte, string, error) {
	columns, err := normalizeExportColumns(req.Columns)
	if err != nil {
		return nil, "", err
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format != "" && format != "xlsx" && format != "csv" {
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", req.Format))
	}

	candidates, err := u.loadAll(ctx)
	if err != nil {
		return nil, "", err
	}

	stamp := u.now().Format("20060102_150405")
	if format == "csv" {
		data, err := exportCSV(candidates, columns)
		if err != nil {
			return nil, "", err
		}
		return data, fmt.Sprintf("candidates_%s.csv", stamp), nil
	}
	data, err := exportExcel(candidates, columns)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("candidates_%s.xlsx", stamp), nil
}

// loadAll walks the candidates table in primary-key order. Batches are keyed
// on the last id seen, so rows deleted mid-export never shift later batches.
func (u *exportUsecase) loadAll(ctx context.Context) ([]domain.Candidate, error) {
	all := []domain.Candidate{}
	var lastID int64
	for {
		batch, err := u.store.Candidates().ListAfter(ctx, lastID, exportBatchSize)
		if err != nil {
			return nil, fmt.Errorf("export candidates: %w", err)
		}
		refs := make([]*domain.Candidate, len(batch))
		for i := range batch {
			refs[i] = &batch[i]
		}
		if err := attachResumes(ctx, u.store.Resumes(), refs); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) > 0 {
			lastID = batch[len(batch)-1].CandidateID
		}
		if len(batch) < exportBatchSize {
			return all, nil
		}
	}
}

func normalizeExportColumns(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return domain.ExportableColumns, nil
	}

	valid := make(map[string]bool, len(domain.ExportableColumns))
	for _, col := range domain.ExportableColumns {
		valid[col] = true
	}

	seen := make(map[string]bool)
	columns := make([]string, 0, len(requested))
	for _, col := range requested {
		col = strings.TrimSpace(col)
		if col == "" || seen[col] {
			continue
		}
		if !valid[col] {
			return nil, apperror.BadRequest(fmt.Sprintf("invalid export column: %s", col))
		}
		seen[col] = true
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return domain.ExportableColumns, nil
	}
	return columns, nil
}

func exportExcel(candidates []domain.Candidate, columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Candidates"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to prepare sheet: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, exportHeaders[col])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, candidate := range candidates {
		for colIdx, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, candidateFieldValue(candidate, col))
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(candidates []domain.Candidate, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	record := make([]string, len(columns))
	for _, candidate := range candidates {
		for i, col := range columns {
			record[i] = fmt.Sprintf("%v", candidateFieldValue(candidate, col))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

func candidateFieldValue(c domain.Candidate, field string) interface{} {
	switch field {
	case "candidate_id":
		return strconv.FormatInt(c.CandidateID, 10)
	case "first_name":
		return c.FirstName
	case "last_name":
		return c.LastName
	case "email":
		return c.Email
	case "phone":
		if c.Phone != nil {
			return *c.Phone
		}
		return ""
	case "resume_count":
		return len(c.Resumes)
	case "resume_titles":
		titles := make([]string, len(c.Resumes))
		for i, r := range c.Resumes {
			titles[i] = r.Title
		}
		return strings.Join(titles, "; ")
	case "created_at":
		return c.CreatedAt.UTC().Format(time.RFC3339)
	case "updated_at":
		if c.UpdatedAt != nil {
			return c.UpdatedAt.UTC().Format(time.RFC3339)
		}
		return ""
	default:
		return ""
	}
}
