package main

import (
	"flag"
	"log"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/common"
	"github.com/joseph-ayodele/survey-tabulator/internal/ledger"
)

// runledger inspects the SQLite run history written by the pipeline.
func main() {
	var (
		limit    = flag.Int("limit", 10, "how many runs to show")
		showDocs = flag.Bool("docs", false, "list per-document outcomes of the most recent run")
	)
	flag.Parse()

	cfg := common.LoadConfig()

	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		log.Fatalf("opening ledger: %v", err)
	}
	defer func() {
		if err := led.Close(); err != nil {
			log.Printf("ERROR: closing ledger: %v", err)
		}
	}()

	runs, err := led.RecentRuns(*limit)
	if err != nil {
		log.Fatalf("listing runs: %v", err)
	}
	if len(runs) == 0 {
		log.Printf("no runs recorded yet (ledger: %s)", led.Path())
		return
	}

	log.Printf("runs: %d (ledger: %s)", len(runs), led.Path())
	for _, r := range runs {
		state := "finished"
		if r.FinishedAt.IsZero() {
			state = "unfinished"
		}
		log.Printf("- [%s] %s found=%d cached=%d extracted=%d failed=%d rows=%d %s",
			r.StartedAt.Format("2006-01-02 15:04:05"), state,
			r.DocsFound, r.Cached, r.Extracted, r.Failed, r.RowsExported, r.RunID)
	}

	latest := runs[0]
	counts, err := led.StatusCounts(latest.RunID)
	if err != nil {
		log.Fatalf("counting statuses: %v", err)
	}
	log.Printf("latest run %s: CACHED=%d EXTRACTED=%d FAILED=%d",
		latest.RunID,
		counts[constants.DocStatusCached],
		counts[constants.DocStatusExtracted],
		counts[constants.DocStatusFailed])

	if !*showDocs {
		return
	}
	docs, err := led.DocumentsForRun(latest.RunID)
	if err != nil {
		log.Fatalf("listing documents: %v", err)
	}
	for _, d := range docs {
		if d.Status == constants.DocStatusFailed {
			log.Printf("- %s %s (%s) stage=%s err=%s", d.Status, d.RelPath, d.DocID, d.Stage, d.Error)
			continue
		}
		log.Printf("- %s %s (%s) elapsed_ms=%d", d.Status, d.RelPath, d.DocID, d.ElapsedMS)
	}
}
