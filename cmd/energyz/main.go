// Command energyz runs the extraction-to-persistence pipeline for a single
// project document, previews display-only uploads, and exports persisted
// projects to XLSX. It is a thin adapter: all pipeline logic lives in
// internal packages.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zalahu/EnergyZ/constants"
	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/entity"
	"github.com/zalahu/EnergyZ/internal/export"
	"github.com/zalahu/EnergyZ/internal/extract"
	"github.com/zalahu/EnergyZ/internal/llm"
	"github.com/zalahu/EnergyZ/internal/llm/openai"
	"github.com/zalahu/EnergyZ/internal/pipeline"
	"github.com/zalahu/EnergyZ/internal/preview"
	"github.com/zalahu/EnergyZ/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		filePath   = flag.String("file", "", "document to ingest (.pdf, .docx, .txt) or preview (.xlsx, .csv, .json)")
		reviewFile = flag.String("review-file", "", "operator-edited FieldMap JSON replacing the extraction")
		autoYes    = flag.Bool("yes", false, "approve the extraction without prompting")
		showText   = flag.Bool("show-text", false, "echo an excerpt of the extracted text")
		exportPath = flag.String("export", "", "write all persisted projects to this XLSX file and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()

	db, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
		TxTimeout:   cfg.Database.TxTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	projects := repository.NewProjectRepository(db, logger)

	if *exportPath != "" {
		runExport(ctx, logger, projects, *exportPath)
		return
	}

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if constants.IsPreviewOnly(constants.DetectFormat(*filePath)) {
		runPreview(logger, *filePath)
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	extractor := extract.NewExtractor(logger)
	fieldExtractor := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	proc := pipeline.NewProcessor(logger, pipeline.Config{
		ArtifactCacheDir: cfg.Pipeline.ArtifactCacheDir,
		LLMTimeout:       cfg.LLM.Timeout,
		DefaultCurrency:  cfg.Pipeline.DefaultCurrency,
	}, extractor, fieldExtractor, chooseReviewer(logger, *reviewFile, *autoYes), projects)

	res, err := proc.ProcessDocument(ctx, *filePath)
	if res != nil && *showText && res.Text != "" {
		excerpt := res.Text
		if len(excerpt) > 1200 {
			excerpt = excerpt[:1200] + "\n…(truncated)"
		}
		fmt.Println("Extracted text:")
		fmt.Println(excerpt)
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrReviewAborted) {
			logger.Info("extraction discarded; nothing was saved")
			return
		}
		logger.Error("pipeline failed", "error", err)
		if res != nil && res.RawResponsePath != "" {
			logger.Info("raw model response kept for inspection", "path", res.RawResponsePath)
		}
		os.Exit(1)
	}

	fmt.Printf("saved project %d (%d fields", res.ProjectID, len(res.Reviewed))
	if res.NeedsReview {
		fmt.Printf(", flagged for review")
	}
	fmt.Println(")")
}

func runExport(ctx context.Context, logger *slog.Logger, projects repository.ProjectRepository, path string) {
	svc := export.NewService(projects, logger)
	b, err := svc.ExportProjectsXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		logger.Error("failed to write export", "path", path, "error", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(b))
}

func runPreview(logger *slog.Logger, path string) {
	doc, err := preview.NewService(logger).Preview(path)
	if err != nil {
		logger.Error("preview failed", "error", err)
		os.Exit(1)
	}
	if doc.Table != nil {
		fmt.Println(strings.Join(doc.Table.Headers, "\t"))
		for _, row := range doc.Table.Rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	}
	fmt.Println(doc.JSON)
}

// chooseReviewer picks the review boundary implementation: an edited JSON
// file, auto-approval, or an interactive prompt.
func chooseReviewer(logger *slog.Logger, reviewFile string, autoYes bool) pipeline.Reviewer {
	if reviewFile != "" {
		return &fileReviewer{path: reviewFile, logger: logger}
	}
	if autoYes {
		return pipeline.AutoApprove{}
	}
	return &promptReviewer{in: bufio.NewReader(os.Stdin)}
}

// fileReviewer replaces the extraction with an operator-edited FieldMap.
// The file goes through the same allowlisted parser as model output.
type fileReviewer struct {
	path   string
	logger *slog.Logger
}

func (r *fileReviewer) Review(_ context.Context, _ entity.FieldMap) (entity.FieldMap, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read review file: %w", err)
	}
	fields, err := llm.ParseFields(b, r.logger)
	if err != nil {
		return nil, fmt.Errorf("review file: %w", err)
	}
	return fields, nil
}

// promptReviewer shows the extraction and waits for explicit approval.
type promptReviewer struct {
	in *bufio.Reader
}

func (r *promptReviewer) Review(_ context.Context, fields entity.FieldMap) (entity.FieldMap, error) {
	b, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, err
	}
	fmt.Println("Extracted fields:")
	fmt.Println(string(b))
	fmt.Print("Save to database? [y/N]: ")

	line, err := r.in.ReadString('\n')
	if err != nil {
		return nil, pipeline.ErrReviewAborted
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return fields, nil
	default:
		return nil, pipeline.ErrReviewAborted
	}
}
