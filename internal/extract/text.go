// Package extract pulls display text and metadata out of clinical
// documents (PDF and DOCX).
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Text extracts the full display text of the file at path, dispatching on
// the file extension. Callers treat an error or an empty result as "file
// unusable" and skip the file; extraction never fails a whole pass.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}
