// Package ledger keeps a local history of pipeline runs in SQLite: one row
// per run plus one row per document outcome. The ledger is advisory. Callers
// log and continue when a write fails, so a broken ledger never sinks a run.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/survey-tabulator/constants"
)

type Ledger struct {
	*sql.DB
	path string
}

// Open opens or creates the run ledger at path, creating parent directories
// as needed and applying the schema.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize ledger schema: %w", err)
	}

	return &Ledger{DB: db, path: path}, nil
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.path
}

// BeginRun records the start of a pipeline run.
func (l *Ledger) BeginRun(runID, archive string) error {
	_, err := l.Exec(`
		INSERT INTO runs (run_id, archive) VALUES (?, ?)
	`, runID, archive)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", runID, err)
	}
	return nil
}

// RecordDocument records one document outcome within a run. Recording the
// same document again replaces the earlier row, so a retried document keeps
// only its final status.
func (l *Ledger) RecordDocument(runID, docID, relPath string, status constants.DocStatus, stage, errMsg string, elapsed time.Duration) error {
	_, err := l.Exec(`
		INSERT OR REPLACE INTO documents (run_id, doc_id, rel_path, status, stage, error, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, docID, relPath, string(status), stage, errMsg, elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("record document %s: %w", docID, err)
	}
	return nil
}

// FinishRun closes out a run with its final counters.
func (l *Ledger) FinishRun(runID string, docsFound, cached, extracted, failed, rowsExported int, output string) error {
	_, err := l.Exec(`
		UPDATE runs
		SET finished_at = CURRENT_TIMESTAMP,
		    docs_found = ?, cached = ?, extracted = ?, failed = ?, rows_exported = ?, output = ?
		WHERE run_id = ?
	`, docsFound, cached, extracted, failed, rowsExported, output, runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	return nil
}
