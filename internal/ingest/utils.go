package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/survey-tabulator/constants"
)

// IsDocument checks if a path has the survey document extension (case-insensitive).
func IsDocument(path string) bool {
	return constants.NormalizeExt(filepath.Ext(path)) == constants.DocumentExt
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
