// Package sheet reads and writes the spreadsheets of the story-problem
// workflow. Input may be .xlsx or .csv; output is always .xlsx.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/alexanderramin/cuesheet/internal/domain"
)

// ContentType is the MIME type of the files this package writes.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TemplateFileName is the suggested name for BlankTemplate output.
const TemplateFileName = "문제_템플릿.xlsx"

// ExampleProblems pre-populate the blank template.
var ExampleProblems = []string{"5 + 7", "12 x 3", "36 ÷ 4", "15 - 8", "7 x 8"}

const sheetName = "Sheet1"

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ReadColumn returns every data row's value in the named column, in file
// order, unmodified. Blank cells are kept as "". The filename extension selects the
// parser. A missing column is a *domain.ValidationError.
func ReadColumn(r io.Reader, filename, column string) ([]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, missingColumn(column)
	}
	col := headerIndex(rows[0], column)
	if col < 0 {
		return nil, missingColumn(column)
	}

	values := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col < len(row) {
			values = append(values, row[col])
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

func missingColumn(column string) error {
	return domain.NewValidationError("file", fmt.Sprintf("'%s' 열이 필요합니다.", column))
}

// headerIndex matches headers after NFC normalization so decomposed Hangul
// (as saved by some macOS tools) still matches.
func headerIndex(header []string, column string) int {
	want := norm.NFC.String(strings.TrimSpace(column))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if norm.NFC.String(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

// WriteTable renders rows as a two-column workbook with the problem and
// generated story columns, preserving row order.
func WriteTable(rows []domain.StoryRow) ([]byte, error) {
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = []string{row.Problem, row.Story}
	}
	return writeWorkbook([]string{domain.ProblemColumn, domain.StoryColumn}, data, []float64{20, 80})
}

// BlankTemplate renders a workbook with the problem column filled with
// ExampleProblems.
func BlankTemplate() ([]byte, error) {
	data := make([][]string, len(ExampleProblems))
	for i, p := range ExampleProblems {
		data[i] = []string{p}
	}
	return writeWorkbook([]string{domain.ProblemColumn}, data, []float64{20})
}

func writeWorkbook(header []string, data [][]string, widths []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}
	for i, row := range data {
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
