package ledger

const schema = `
-- Reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per pipeline invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    archive TEXT NOT NULL,
    docs_found INTEGER DEFAULT 0,
    cached INTEGER DEFAULT 0,
    extracted INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0,
    rows_exported INTEGER DEFAULT 0,
    output TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

-- Documents: per-document outcome within a run
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    doc_id TEXT NOT NULL,
    rel_path TEXT NOT NULL,
    status TEXT NOT NULL,         -- CACHED, EXTRACTED, FAILED
    stage TEXT,                   -- failing stage when status is FAILED
    error TEXT,
    elapsed_ms INTEGER DEFAULT 0,
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, doc_id)
);

CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
`
