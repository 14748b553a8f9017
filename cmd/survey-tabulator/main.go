package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/survey-tabulator/internal/artifact"
	"github.com/joseph-ayodele/survey-tabulator/internal/common"
	"github.com/joseph-ayodele/survey-tabulator/internal/export"
	"github.com/joseph-ayodele/survey-tabulator/internal/extract/gemini"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
	"github.com/joseph-ayodele/survey-tabulator/internal/ledger"
	"github.com/joseph-ayodele/survey-tabulator/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		archive    = flag.String("archive", "", "ZIP archive of scanned survey PDFs")
		fieldsFile = flag.String("fields", "", "field specification file, one field per line")
		out        = flag.String("out", "", "output XLSX file path")
		artifacts  = flag.String("artifacts", "", "directory for cached per-document JSON records")
		configFile = flag.String("config", "", "optional YAML config file")
		noLedger   = flag.Bool("no-ledger", false, "disable the SQLite run ledger")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration: env first, then config file, then flags
	cfg := common.LoadConfig()
	if *configFile != "" {
		if err := cfg.ApplyFile(*configFile); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *archive != "" {
		cfg.Paths.Archive = *archive
	}
	if *fieldsFile != "" {
		cfg.Paths.FieldsFile = *fieldsFile
	}
	if *out != "" {
		cfg.Paths.Output = *out
	}
	if *artifacts != "" {
		cfg.Paths.ArtifactDir = *artifacts
	}
	if *noLedger {
		cfg.Ledger.Disabled = true
	}

	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load the field specification
	list, err := fields.Load(cfg.Paths.FieldsFile, cfg.Extract.RatingKeywords)
	if err != nil {
		logger.Error("failed to load field specification", "path", cfg.Paths.FieldsFile, "error", err)
		os.Exit(1)
	}
	logger.Info("field specification loaded", "path", cfg.Paths.FieldsFile, "field_count", list.Len())

	// Setup Vertex AI client
	client, err := gemini.NewClient(ctx, gemini.Config{
		ProjectID:   cfg.GCP.ProjectID,
		Region:      cfg.GCP.Region,
		Model:       cfg.Extract.Model,
		Temperature: cfg.Extract.Temperature,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize Vertex AI client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("closing Vertex AI client", "error", err)
		}
	}()
	logger.Info("Vertex AI client initialized", "model", cfg.Extract.Model, "region", cfg.GCP.Region)

	// Setup artifact store
	store, err := artifact.NewStore(cfg.Paths.ArtifactDir, logger)
	if err != nil {
		logger.Error("failed to prepare artifact store", "error", err)
		os.Exit(1)
	}

	// Setup run ledger (optional, never fatal)
	var led *ledger.Ledger
	if !cfg.Ledger.Disabled {
		led, err = ledger.Open(cfg.Ledger.Path)
		if err != nil {
			logger.Warn("run ledger unavailable, continuing without it", "path", cfg.Ledger.Path, "error", err)
			led = nil
		} else {
			defer led.Close()
		}
	}

	p := pipeline.NewPipeline(logger, cfg, list, client, store, export.NewService(logger), led)

	sum, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", "run_id", sum.RunID, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Survey tabulation complete!\n")
	fmt.Printf("- Documents found: %d\n", sum.DocsFound)
	fmt.Printf("- Already cached: %d\n", sum.Cached)
	fmt.Printf("- Extracted: %d\n", sum.Extracted)
	fmt.Printf("- Failed: %d\n", sum.Failed)
	if sum.SkippedArtifacts > 0 {
		fmt.Printf("- Skipped artifacts: %d\n", sum.SkippedArtifacts)
	}
	fmt.Printf("- Rows exported: %d\n", sum.RowsExported)
	if sum.OutputPath != "" {
		fmt.Printf("- Output: %s\n", sum.OutputPath)
	} else {
		fmt.Printf("- Output: none (nothing to export)\n")
	}
}
