package services

import (
	"bytes"
	"encoding/csv"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/formworks/formbuilder-server/models"
)

const exportSheetName = "Responses"

// Table is the flattened export: a header row and one row per response.
// Column i+2 of every row belongs to the question at header position i —
// answers are matched by question id, never by storage position.
type Table struct {
	Headers []string
	Rows    [][]string
}

type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// BuildTable materializes a form's responses into tabular shape:
// header [Email, Submitted At, <question titles by order asc>], rows by
// response createdAt descending, missing answers as empty strings.
func (s *ExportService) BuildTable(formID string) (*Table, *models.Form, error) {
	form, err := NewFormService(s.db).Get(formID)
	if err != nil {
		return nil, nil, err
	}
	responses, err := NewResponseService(s.db, nil).List(formID)
	if err != nil {
		return nil, nil, err
	}

	headers := []string{"Email", "Submitted At"}
	for _, q := range form.Questions {
		headers = append(headers, q.Title)
	}

	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		byQuestion := make(map[string]string, len(r.Answers))
		for _, a := range r.Answers {
			byQuestion[a.QuestionID] = a.Value
		}
		row := []string{r.Email, r.CreatedAt.UTC().Format(time.RFC3339)}
		for _, q := range form.Questions {
			row = append(row, byQuestion[q.ID])
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, form, nil
}

// WriteCSV emits the table with standard CSV quoting.
func (s *ExportService) WriteCSV(w io.Writer, table *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX emits a single-sheet workbook named "Responses" with fixed
// column widths.
func (s *ExportService) WriteXLSX(table *Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(exportSheetName, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, table.Headers); err != nil {
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	if len(table.Headers) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, "A", lastCol, 20); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
