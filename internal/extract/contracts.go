package extract

import (
	"context"
	"time"

	"github.com/zalahu/EnergyZ/constants"
)

// TextExtractor is Stage 1: document file -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int // PDF pages or DOCX paragraphs; 1 for plain text
	Format   constants.FileFormat
	Duration time.Duration
	Warnings []string
}
