package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/joseph-ayodele/survey-tabulator/constants"
)

// Run is one pipeline invocation.
type Run struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time // zero when the run never finished
	Archive      string
	DocsFound    int
	Cached       int
	Extracted    int
	Failed       int
	RowsExported int
	Output       string
}

// Document is one document outcome within a run.
type Document struct {
	RunID      string
	DocID      string
	RelPath    string
	Status     constants.DocStatus
	Stage      string
	Error      string
	ElapsedMS  int64
	RecordedAt time.Time
}

// RecentRuns returns runs ordered newest first. A limit of 0 returns all.
func (l *Ledger) RecentRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, started_at, finished_at, archive, docs_found, cached,
		       extracted, failed, rows_exported, output
		FROM runs
		ORDER BY started_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := l.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		var output sql.NullString
		if err := rows.Scan(&r.RunID, &r.StartedAt, &finished, &r.Archive, &r.DocsFound,
			&r.Cached, &r.Extracted, &r.Failed, &r.RowsExported, &output); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		if output.Valid {
			r.Output = output.String
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DocumentsForRun returns every document outcome of a run in recording order.
func (l *Ledger) DocumentsForRun(runID string) ([]Document, error) {
	rows, err := l.Query(`
		SELECT run_id, doc_id, rel_path, status, stage, error, elapsed_ms, recorded_at
		FROM documents
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list documents for run %s: %w", runID, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var status string
		var stage, errMsg sql.NullString
		if err := rows.Scan(&d.RunID, &d.DocID, &d.RelPath, &status, &stage, &errMsg,
			&d.ElapsedMS, &d.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Status = constants.DocStatus(status)
		if stage.Valid {
			d.Stage = stage.String
		}
		if errMsg.Valid {
			d.Error = errMsg.String
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// StatusCounts returns how many documents of a run landed in each status.
func (l *Ledger) StatusCounts(runID string) (map[constants.DocStatus]int, error) {
	rows, err := l.Query(`
		SELECT status, COUNT(*)
		FROM documents
		WHERE run_id = ?
		GROUP BY status
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("count statuses for run %s: %w", runID, err)
	}
	defer rows.Close()

	counts := make(map[constants.DocStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[constants.DocStatus(status)] = n
	}
	return counts, rows.Err()
}
