package llm

import "context"

// ExtractRequest carries the document text and hints into field extraction.
type ExtractRequest struct {
	Text            string
	FilenameHint    string
	DefaultCurrency string
}

// FieldExtractor is the interface the pipeline depends on. It returns the
// model's raw textual response; structural validation happens in ParseFields.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) ([]byte, error)
}
