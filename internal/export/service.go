package export

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zalahu/EnergyZ/internal/entity"
	"github.com/zalahu/EnergyZ/internal/repository"
)

// Service is a tiny façade over the project repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
}

func NewService(repo repository.ProjectRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

var exportHeaders = []string{
	"ID",
	"Project Name",
	"Sector",
	"Country",
	"Region",
	"Status",
	"Start Date",
	"End Date",
	"Capex",
	"Opex",
	"IRR",
	"NPV",
	"Currency",
	"CO2e Reduction",
	"Carbon Intensity",
	"Lifecycle Emissions",
	"Data Source",
}

// ExportProjectsXLSX returns an XLSX workbook (as bytes) of every persisted
// project joined with its financial and environmental rows.
func (s *Service) ExportProjectsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Projects"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, rec := range records {
		for colIdx, v := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.ok",
		"projects", len(records),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func exportRow(rec *entity.ProjectRecord) []string {
	p := rec.Project
	row := []string{
		strconv.FormatInt(p.ID, 10),
		strOrEmpty(p.Name),
		strOrEmpty(p.Sector),
		strOrEmpty(p.Country),
		strOrEmpty(p.Region),
		strOrEmpty(p.Status),
		dateOrEmpty(p.StartDate),
		dateOrEmpty(p.EndDate),
	}

	if fin := rec.Financial; fin != nil {
		row = append(row,
			floatOrEmpty(fin.Capex),
			strOrEmpty(fin.Opex),
			floatOrEmpty(fin.IRR),
			floatOrEmpty(fin.NPV),
			fin.Currency,
		)
	} else {
		row = append(row, "", "", "", "", "")
	}

	if env := rec.Environmental; env != nil {
		row = append(row,
			strOrEmpty(env.CO2eReduction),
			strOrEmpty(env.CarbonIntensity),
			strOrEmpty(env.LifecycleEmissions),
			env.DataSource,
		)
	} else {
		row = append(row, "", "", "", "")
	}
	return row
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func dateOrEmpty(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format("2006-01-02")
}
