// Package artifact persists one JSON record per document. The presence of an
// artifact is what makes a rerun resumable: documents with an artifact on disk
// are never sent back to the model.
package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/survey-tabulator/constants"
	"github.com/joseph-ayodele/survey-tabulator/internal/extract"
)

// Store reads and writes per-document record artifacts under a single
// directory. Writes are atomic: a temp file in the same directory is renamed
// into place, so a crash mid-write never leaves a half-written artifact that
// a later run would trust.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the artifact path for a document ID.
func (s *Store) PathFor(docID string) string {
	return filepath.Join(s.dir, docID+constants.ArtifactExt)
}

// Has reports whether an artifact already exists for the document.
func (s *Store) Has(docID string) bool {
	_, err := os.Stat(s.PathFor(docID))
	return err == nil
}

// Write persists a record as indented JSON.
func (s *Store) Write(docID string, rec extract.Record) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", docID, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, docID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact for %s: %w", docID, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact for %s: %w", docID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close artifact for %s: %w", docID, err)
	}
	if err := os.Rename(tmpName, s.PathFor(docID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish artifact for %s: %w", docID, err)
	}
	return nil
}

// ReadAll loads every artifact in the store, sorted by filename. Artifacts
// that fail to parse are skipped with a warning and counted, never fatal: one
// corrupt file must not sink the rows that are fine.
func (s *Store) ReadAll() ([]extract.Record, int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read artifact dir %s: %w", s.dir, err)
	}

	var records []extract.Record
	skipped := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), constants.ArtifactExt) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("artifact.read.skip", "path", path, "error", err)
			skipped++
			continue
		}
		var rec extract.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Warn("artifact.read.skip", "path", path, "error", err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
