package ingest

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Document is one located survey PDF inside the extraction directory.
type Document struct {
	Path    string // absolute path on disk
	RelPath string // path relative to the scan root, forward slashes
	ID      string // artifact identifier, stable across runs
}

var unsafeIDChar = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// DocumentID derives the artifact identifier for a document from its
// root-relative path. The readable part flattens separators into underscores
// and strips the extension; the hash suffix keeps identifiers unique when
// distinct paths flatten to the same slug (a_b.pdf vs a/b.pdf).
func DocumentID(relPath string) string {
	norm := filepath.ToSlash(relPath)

	slug := strings.TrimSuffix(norm, filepath.Ext(norm))
	slug = strings.ReplaceAll(slug, "/", "_")
	slug = unsafeIDChar.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "document"
	}

	sum := sha256.Sum256([]byte(norm))
	return fmt.Sprintf("%s-%x", slug, sum[:6])
}
