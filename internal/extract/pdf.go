package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF pulls plain text from each page. Pages that yield no extractable
// text (scanned images, drawing-only pages) are skipped with a warning rather
// than failing the document.
func extractPDF(ctx context.Context, path string) (string, int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, nil, err
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", 0, nil, fmt.Errorf("open pdf: %w", err)
	}

	var (
		texts    []string
		warnings []string
	)
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", numPages, warnings, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: missing page object", i))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		texts = append(texts, text)
	}

	return joinPages(texts), numPages, warnings, nil
}

// joinPages concatenates per-page text with line breaks, dropping pages that
// yielded nothing.
func joinPages(texts []string) string {
	kept := texts[:0:0]
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, "\n")
}
