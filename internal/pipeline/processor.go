package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
	"github.com/zalahu/EnergyZ/internal/extract"
	"github.com/zalahu/EnergyZ/internal/llm"
	"github.com/zalahu/EnergyZ/internal/repository"
)

// Config holds timeouts and behavior flags for the pipeline.
type Config struct {
	ArtifactCacheDir string        // raw responses kept here on parse failure; default "./tmp"
	LLMTimeout       time.Duration // bound on the model call; default 45s
	DefaultCurrency  string        // default "USD"
}

// Processor runs the extraction-to-persistence pipeline for one document:
// text extraction, model extraction, parse, human review, atomic save.
// Stages execute strictly in sequence; one document is in flight at a time.
type Processor struct {
	Logger    *slog.Logger
	Cfg       Config
	Extractor extract.TextExtractor
	Fields    llm.FieldExtractor
	Reviewer  Reviewer
	Projects  repository.ProjectRepository
}

// Result summarizes one document's trip through the pipeline.
type Result struct {
	DocumentID      uuid.UUID
	Format          constants.FileFormat
	Text            string
	Fields          entity.FieldMap // extraction after sanitize/validate
	Reviewed        entity.FieldMap // what the operator approved
	ProjectID       int64
	NeedsReview     bool   // unknown status label or thin extraction
	RawResponsePath string // set when the raw model response was kept as an artifact
}

func NewProcessor(logger *slog.Logger, cfg Config, ex extract.TextExtractor, fe llm.FieldExtractor, rv Reviewer, repo repository.ProjectRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ArtifactCacheDir == "" {
		cfg.ArtifactCacheDir = "./tmp"
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 45 * time.Second
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	if rv == nil {
		rv = AutoApprove{}
	}
	return &Processor{
		Logger:    logger,
		Cfg:       cfg,
		Extractor: ex,
		Fields:    fe,
		Reviewer:  rv,
		Projects:  repo,
	}
}

// ProcessDocument runs one document end to end. Errors at every stage are
// recoverable: nothing has been persisted unless the returned Result carries
// a non-zero ProjectID.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (*Result, error) {
	docID := uuid.New()
	ctx = common.WithRequestID(ctx, docID.String())

	res := &Result{DocumentID: docID, Format: constants.DetectFormat(path)}

	// 1) text extraction
	ext, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "doc_id", docID, "path", path, "error", err)
		return res, err
	}
	res.Format = ext.Format
	res.Text = ext.Text
	if ext.Text == "" {
		err := common.NewExtractionError("document yielded no extractable text", nil)
		p.Logger.Error("pipeline.extract.empty", "doc_id", docID, "path", path)
		return res, err
	}

	// 2) model extraction, bounded by its own timeout
	llmCtx, cancel := common.WithTimeout(ctx, p.Cfg.LLMTimeout)
	raw, err := p.Fields.ExtractFields(llmCtx, llm.ExtractRequest{
		Text:            ext.Text,
		FilenameHint:    filepath.Base(path),
		DefaultCurrency: p.Cfg.DefaultCurrency,
	})
	cancel()
	if err != nil {
		p.Logger.Error("pipeline.llm.failed", "doc_id", docID, "error", err)
		return res, err
	}

	// 3) parse; the raw response is kept for manual inspection when it
	// fails to validate
	fields, err := llm.ParseFields(raw, p.Logger)
	if err != nil {
		res.RawResponsePath = p.saveRawArtifact(docID, raw)
		p.Logger.Error("pipeline.parse.failed",
			"doc_id", docID, "raw_artifact", res.RawResponsePath, "error", err)
		return res, err
	}
	res.Fields = fields
	res.NeedsReview = needsReview(fields)

	// 4) human review; an abort leaves the extraction in the result but
	// never reaches persistence
	reviewed, err := p.Reviewer.Review(ctx, fields.Clone())
	if err != nil {
		if errors.Is(err, ErrReviewAborted) {
			p.Logger.Info("pipeline.review.aborted", "doc_id", docID)
			return res, err
		}
		p.Logger.Error("pipeline.review.failed", "doc_id", docID, "error", err)
		return res, err
	}
	res.Reviewed = reviewed

	// 5) atomic tri-table save
	projectID, err := p.Projects.SaveExtraction(ctx, reviewed)
	if err != nil {
		p.Logger.Error("pipeline.persist.failed", "doc_id", docID, "error", err)
		return res, err
	}
	res.ProjectID = projectID

	p.Logger.Info("pipeline.ok",
		"doc_id", docID,
		"format", res.Format,
		"project_id", projectID,
		"fields", len(reviewed),
		"needs_review", res.NeedsReview,
	)
	return res, nil
}

// needsReview flags extractions the operator should look at twice: an
// unknown status label or an extraction missing the identity field.
func needsReview(fields entity.FieldMap) bool {
	if _, ok := fields.String(constants.FieldProjectName); !ok {
		return true
	}
	if s, ok := fields.String(constants.FieldStatus); ok {
		if _, known := constants.CanonicalizeStatus(s); !known {
			return true
		}
	}
	return false
}

// saveRawArtifact writes the raw model response under the artifact cache dir.
// Failures are logged, not fatal; the artifact is a courtesy, not a contract.
func (p *Processor) saveRawArtifact(docID uuid.UUID, raw []byte) string {
	if err := os.MkdirAll(p.Cfg.ArtifactCacheDir, 0o755); err != nil {
		p.Logger.Warn("pipeline.artifact.mkdir_failed", "dir", p.Cfg.ArtifactCacheDir, "error", err)
		return ""
	}
	path := filepath.Join(p.Cfg.ArtifactCacheDir, fmt.Sprintf("%s-response.json", docID))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		p.Logger.Warn("pipeline.artifact.write_failed", "path", path, "error", err)
		return ""
	}
	return path
}
