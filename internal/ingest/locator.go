package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// FindDocuments walks root and collects every survey PDF in walk order,
// skipping hidden files and directories (this also drops the "._" resource
// forks that macOS-built archives carry). An empty result is not an error.
func FindDocuments(root string) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDocument(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		docs = append(docs, Document{Path: path, RelPath: rel, ID: DocumentID(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return docs, nil
}
