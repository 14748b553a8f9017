package constants

import "strings"

// DocumentExt is the only file extension the locator accepts.
const DocumentExt = "pdf"

// DocumentMIMEType is the MIME type sent with each model request.
const DocumentMIMEType = "application/pdf"

// ArtifactExt is the extension written for cached extraction records.
const ArtifactExt = ".json"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
