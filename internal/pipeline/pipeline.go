// Package pipeline coordinates the end-to-end batch: unpack the survey
// archive, run every document through the model, cache records as artifacts,
// consolidate, and export the workbook.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/artifact"
	"github.com/joseph-ayodele/survey-tabulator/internal/common"
	"github.com/joseph-ayodele/survey-tabulator/internal/consolidate"
	"github.com/joseph-ayodele/survey-tabulator/internal/export"
	"github.com/joseph-ayodele/survey-tabulator/internal/extract"
	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
	"github.com/joseph-ayodele/survey-tabulator/internal/ingest"
	"github.com/joseph-ayodele/survey-tabulator/internal/ledger"
)

// Summary is what one run produced.
type Summary struct {
	RunID            string
	DocsFound        int
	Cached           int
	Extracted        int
	Failed           int
	SkippedArtifacts int
	RowsExported     int
	OutputPath       string
	Elapsed          time.Duration
}

// Pipeline runs documents sequentially. A document failure is recorded and
// skipped; only startup problems (archive, workbook write) abort the run.
type Pipeline struct {
	logger    *slog.Logger
	cfg       *common.Config
	list      *fields.List
	extractor extract.Extractor
	store     *artifact.Store
	exporter  *export.Service
	ledger    *ledger.Ledger // nil when run history is disabled

	// pageCount pre-flights a PDF before it is sent to the model.
	pageCount func(path string) (int, error)
}

func NewPipeline(
	logger *slog.Logger,
	cfg *common.Config,
	list *fields.List,
	extractor extract.Extractor,
	store *artifact.Store,
	exporter *export.Service,
	led *ledger.Ledger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:    logger,
		cfg:       cfg,
		list:      list,
		extractor: extractor,
		store:     store,
		exporter:  exporter,
		ledger:    led,
		pageCount: func(path string) (int, error) { return api.PageCountFile(path) },
	}
}

// Run executes one batch. The returned Summary is valid even when err is
// non-nil, so callers can report partial progress.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.New().String()
	start := time.Now()
	sum := Summary{RunID: runID}

	p.logger.Info("pipeline.run.start",
		"run_id", runID,
		"archive", p.cfg.Paths.Archive,
		"field_count", p.list.Len(),
	)
	p.ledgerBegin(runID)

	// 1) Unpack the archive
	entries, err := ingest.Unzip(p.cfg.Paths.Archive, p.cfg.Paths.ExtractDir)
	if err != nil {
		return sum, common.NewAppError("INGEST_ERROR", fmt.Sprintf("unzip %s", p.cfg.Paths.Archive), err)
	}
	p.logger.Info("pipeline.unzip.ok", "run_id", runID, "entries", entries, "dir", p.cfg.Paths.ExtractDir)

	// 2) Locate documents
	docs, err := ingest.FindDocuments(p.cfg.Paths.ExtractDir)
	if err != nil {
		return sum, common.NewAppError("INGEST_ERROR", "locate documents", err)
	}
	sum.DocsFound = len(docs)
	if len(docs) == 0 {
		p.logger.Warn("pipeline.run.no_documents", "run_id", runID, "dir", p.cfg.Paths.ExtractDir)
		sum.Elapsed = time.Since(start)
		p.ledgerFinish(runID, sum)
		return sum, nil
	}

	// 3) Per-document extraction, resumable via the artifact store
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			p.ledgerFinish(runID, sum)
			return sum, err
		}
		p.logger.Info("pipeline.doc.start",
			"run_id", runID, "doc_id", doc.ID, "rel_path", doc.RelPath,
			"progress", fmt.Sprintf("%d/%d", i+1, len(docs)),
		)
		switch p.processDocument(ctx, runID, doc) {
		case constants.DocStatusCached:
			sum.Cached++
		case constants.DocStatusExtracted:
			sum.Extracted++
		case constants.DocStatusFailed:
			sum.Failed++
		}
	}

	// 4) Consolidate cached records
	records, skipped, err := p.store.ReadAll()
	if err != nil {
		return sum, common.NewAppError("CONSOLIDATE_ERROR", "read artifacts", err)
	}
	sum.SkippedArtifacts = skipped
	if len(records) == 0 {
		p.logger.Warn("pipeline.run.no_records", "run_id", runID, "artifact_dir", p.store.Dir())
		sum.Elapsed = time.Since(start)
		p.ledgerFinish(runID, sum)
		return sum, nil
	}

	// 5) Export the workbook
	table := consolidate.Build(records, p.list)
	data, err := p.exporter.ExportSurveysXLSX(table)
	if err != nil {
		return sum, common.NewAppError("EXPORT_ERROR", "build workbook", err)
	}
	if err := os.WriteFile(p.cfg.Paths.Output, data, 0o644); err != nil {
		return sum, common.NewAppError("EXPORT_ERROR", fmt.Sprintf("write %s", p.cfg.Paths.Output), err)
	}
	sum.RowsExported = len(table.Rows)
	sum.OutputPath = p.cfg.Paths.Output

	sum.Elapsed = time.Since(start)
	p.ledgerFinish(runID, sum)
	p.logger.Info("pipeline.run.ok",
		"run_id", runID,
		"docs_found", sum.DocsFound,
		"cached", sum.Cached,
		"extracted", sum.Extracted,
		"failed", sum.Failed,
		"rows", sum.RowsExported,
		"output", sum.OutputPath,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	return sum, nil
}

// processDocument handles one document and reports its final status. Errors
// never propagate; they are logged and written to the ledger.
func (p *Pipeline) processDocument(ctx context.Context, runID string, doc ingest.Document) constants.DocStatus {
	start := time.Now()

	if p.store.Has(doc.ID) {
		p.logger.Info("pipeline.doc.cached", "run_id", runID, "doc_id", doc.ID, "rel_path", doc.RelPath)
		p.ledgerRecord(runID, doc, constants.DocStatusCached, nil, time.Since(start))
		return constants.DocStatusCached
	}

	if err := p.extractDocument(ctx, doc); err != nil {
		p.logger.Error("pipeline.doc.failed",
			"run_id", runID, "doc_id", doc.ID, "rel_path", doc.RelPath,
			"stage", string(extract.StageOf(err)), "err", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		p.ledgerRecord(runID, doc, constants.DocStatusFailed, err, time.Since(start))
		return constants.DocStatusFailed
	}

	p.logger.Info("pipeline.doc.extracted",
		"run_id", runID, "doc_id", doc.ID, "rel_path", doc.RelPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	p.ledgerRecord(runID, doc, constants.DocStatusExtracted, nil, time.Since(start))
	return constants.DocStatusExtracted
}

// extractDocument pre-flights the PDF, calls the model under the configured
// timeout, and caches the record. Every failure is tagged with its stage.
func (p *Pipeline) extractDocument(ctx context.Context, doc ingest.Document) error {
	if _, err := p.pageCount(doc.Path); err != nil {
		return extract.NewError(extract.StagePreflight, fmt.Errorf("page count: %w", err))
	}

	pdf, err := os.ReadFile(doc.Path)
	if err != nil {
		return extract.NewError(extract.StageRead, err)
	}

	callCtx := ctx
	if p.cfg.Extract.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.cfg.Extract.Timeout)
		defer cancel()
	}
	rec, err := p.extractor.Extract(callCtx, pdf, p.list)
	if err != nil {
		var xerr *extract.Error
		if errors.As(err, &xerr) {
			return err
		}
		return extract.NewError(extract.StageModel, err)
	}

	if err := p.store.Write(doc.ID, rec); err != nil {
		return extract.NewError(extract.StageArtifact, err)
	}
	return nil
}

func (p *Pipeline) ledgerBegin(runID string) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.BeginRun(runID, p.cfg.Paths.Archive); err != nil {
		p.logger.Warn("pipeline.ledger.begin_failed", "run_id", runID, "err", err)
	}
}

func (p *Pipeline) ledgerRecord(runID string, doc ingest.Document, status constants.DocStatus, cause error, elapsed time.Duration) {
	if p.ledger == nil {
		return
	}
	stage, msg := "", ""
	if cause != nil {
		stage = string(extract.StageOf(cause))
		msg = cause.Error()
	}
	if err := p.ledger.RecordDocument(runID, doc.ID, doc.RelPath, status, stage, msg, elapsed); err != nil {
		p.logger.Warn("pipeline.ledger.record_failed", "run_id", runID, "doc_id", doc.ID, "err", err)
	}
}

func (p *Pipeline) ledgerFinish(runID string, sum Summary) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.FinishRun(runID, sum.DocsFound, sum.Cached, sum.Extracted, sum.Failed, sum.RowsExported, sum.OutputPath); err != nil {
		p.logger.Warn("pipeline.ledger.finish_failed", "run_id", runID, "err", err)
	}
}
