package source

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// IsCandidateFile reports whether a filename is a clinical document the
// pipeline handles.
func IsCandidateFile(name string) bool {
	return strings.HasSuffix(name, ".pdf") || strings.HasSuffix(name, ".docx")
}

// ListDocumentFiles returns the names of candidate files directly in dir,
// in directory iteration order. An unlistable directory is logged and
// yields an empty result; a missing directory never fails a pass.
func ListDocumentFiles(dir string, logger *zap.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("document directory unavailable",
			zap.String("directory", dir),
			zap.Error(err),
		)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if IsCandidateFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files
}
