// Package preview renders tabular and structured uploads (xlsx, csv, json)
// for display. These formats never enter the extraction pipeline.
package preview

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
)

// Table is a rendered spreadsheet or CSV.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Document is the display-only result for one upload.
type Document struct {
	Format constants.FileFormat
	Table  *Table // xlsx/csv
	JSON   string // json, pretty-printed
}

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Preview loads a display-only upload. Extractable formats are rejected;
// they belong to the pipeline.
func (s *Service) Preview(path string) (*Document, error) {
	format := constants.DetectFormat(path)
	if !constants.IsPreviewOnly(format) {
		return nil, common.NewExtractionError(
			fmt.Sprintf("format %q is not a display-only format", format), nil)
	}

	s.logger.Info("preview.start", "path", path, "format", format)

	doc := &Document{Format: format}
	var err error
	switch format {
	case constants.XLSX:
		doc.Table, err = readXLSX(path)
	case constants.CSV:
		doc.Table, err = readCSV(path)
	case constants.JSON:
		doc.JSON, err = readJSON(path)
	}
	if err != nil {
		s.logger.Error("preview.failed", "path", path, "error", err)
		return nil, common.NewExtractionError(fmt.Sprintf("preview %s document", format), err)
	}

	s.logger.Info("preview.ok", "path", path, "format", format)
	return doc, nil
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows), nil
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableFromRows(rows), nil
}

func readJSON(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	return &Table{Headers: rows[0], Rows: rows[1:]}
}
