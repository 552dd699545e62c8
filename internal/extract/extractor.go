package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
)

// Extractor dispatches to a format-specific parser by file extension.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	format := constants.DetectFormat(path)
	if format == "" {
		return TextExtractionResult{}, common.NewExtractionError(
			fmt.Sprintf("unsupported file format: %q", path), nil)
	}
	if !constants.IsExtractable(format) {
		return TextExtractionResult{}, common.NewExtractionError(
			fmt.Sprintf("format %s is display-only and does not flow through text extraction", format), nil)
	}

	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, common.NewExtractionError("extraction cancelled", err)
	}

	e.logger.Info("extract.start", "path", path, "format", format)

	var (
		text     string
		pages    int
		warnings []string
		err      error
	)
	switch format {
	case constants.PDF:
		text, pages, warnings, err = extractPDF(ctx, path)
	case constants.DOCX:
		text, pages, err = extractDOCX(path)
	case constants.TXT:
		text, err = extractText(path)
		pages = 1
	}
	if err != nil {
		e.logger.Error("extract.failed", "path", path, "format", format, "error", err)
		return TextExtractionResult{}, common.NewExtractionError(
			fmt.Sprintf("extract %s document", format), err)
	}

	res := TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Format:   format,
		Duration: time.Since(start),
		Warnings: warnings,
	}
	e.logger.Info("extract.ok",
		"path", path,
		"format", format,
		"pages", pages,
		"text_bytes", len(text),
		"warnings", len(warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
