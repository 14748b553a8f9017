package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/survey-tabulator/internal/common"
	"github.com/joseph-ayodele/survey-tabulator/internal/extract/gemini"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

// extractpdf sends a single survey PDF through the model and prints the
// record, without touching the artifact store. Useful for tuning the field
// specification against one document.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: extractpdf <survey.pdf> [fields.txt]")
		os.Exit(2)
	}
	pdfPath := os.Args[1]

	cfg := common.LoadConfig()
	if len(os.Args) >= 3 {
		cfg.Paths.FieldsFile = os.Args[2]
	}
	if cfg.GCP.ProjectID == "" {
		logger.Error("GCP_PROJECT_ID env var is required")
		os.Exit(2)
	}

	list, err := fields.Load(cfg.Paths.FieldsFile, cfg.Extract.RatingKeywords)
	if err != nil {
		logger.Error("load field specification", "path", cfg.Paths.FieldsFile, "error", err)
		os.Exit(1)
	}

	pages, err := api.PageCountFile(pdfPath)
	if err != nil {
		logger.Error("not a readable PDF", "path", pdfPath, "error", err)
		os.Exit(1)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		logger.Error("read pdf", "path", pdfPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Extract.Timeout)
	defer cancel()

	client, err := gemini.NewClient(ctx, gemini.Config{
		ProjectID:   cfg.GCP.ProjectID,
		Region:      cfg.GCP.Region,
		Model:       cfg.Extract.Model,
		Temperature: cfg.Extract.Temperature,
	}, logger)
	if err != nil {
		logger.Error("initialize Vertex AI client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	start := time.Now()
	logger.Info("extract.start",
		"basename", filepath.Base(pdfPath),
		"pages", pages,
		"field_count", list.Len(),
	)

	rec, err := client.Extract(ctx, pdf, list)
	if err != nil {
		logger.Error("extract.error", "err", err)
		os.Exit(1)
	}
	logger.Info("extract.ok", "elapsed_ms", time.Since(start).Milliseconds())

	out, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		logger.Error("render record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
