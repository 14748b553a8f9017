package constants

// DocStatus is the canonical status for per-document rows in the run ledger.
type DocStatus string

// Stable values (store these exact strings in the ledger).
const (
	DocStatusCached    DocStatus = "CACHED"    // artifact already on disk, model call skipped
	DocStatusExtracted DocStatus = "EXTRACTED" // model call succeeded, artifact written
	DocStatusFailed    DocStatus = "FAILED"    // terminal failure for this document
)
