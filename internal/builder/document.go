package builder

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fcolobe/data-engineer-challenge/internal/domain"
	"github.com/fcolobe/data-engineer-challenge/internal/extract"
)

// SkipReason classifies why a candidate file was left out of a pass.
type SkipReason string

const (
	// SkipMalformedFilename: the filename stem did not split into
	// exactly <externalId>_<sourceDocId>.
	SkipMalformedFilename SkipReason = "malformed_filename"
	// SkipUnreadable: text extraction failed or produced nothing.
	SkipUnreadable SkipReason = "unreadable"
	// SkipUnknownPatient: no identity row matches the external id.
	SkipUnknownPatient SkipReason = "unknown_patient"
)

// SkippedFile is one file left out of a pass, with its reason.
type SkippedFile struct {
	Name   string
	Reason SkipReason
}

// Report summarizes one document pass.
type Report struct {
	Processed int
	Skipped   []SkippedFile
}

// IdentityLookup resolves an external hospital identifier to a warehouse
// patient number.
type IdentityLookup interface {
	LookupPatientNum(ctx context.Context, hospitalPatientID string) (int64, bool, error)
}

// TextExtractor pulls the display text out of a candidate file.
type TextExtractor func(path string) (string, error)

// DocumentBuilder turns candidate files into DWH_DOCUMENT records.
type DocumentBuilder struct {
	dir        string
	identities IdentityLookup
	extractor  TextExtractor
	logger     *zap.Logger
}

// NewDocumentBuilder creates a builder reading files from dir.
func NewDocumentBuilder(dir string, identities IdentityLookup, extractor TextExtractor, logger *zap.Logger) *DocumentBuilder {
	return &DocumentBuilder{
		dir:        dir,
		identities: identities,
		extractor:  extractor,
		logger:     logger,
	}
}

// Build processes the candidate files in iteration order. Per-file
// problems (bad filename, unreadable content, unknown patient) skip the
// file and land in the report; only warehouse lookup failures abort the
// pass. DOCUMENT_NUM is assigned as a dense 1-based counter over the
// surviving files, so skipped files never leave gaps.
func (b *DocumentBuilder) Build(ctx context.Context, files []string, uploadID int64) ([]domain.Document, Report, error) {
	var (
		documents   []domain.Document
		report      Report
		documentNum int64 = 1
	)

	skip := func(name string, reason SkipReason) {
		report.Skipped = append(report.Skipped, SkippedFile{Name: name, Reason: reason})
	}

	for _, name := range files {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)

		parts := strings.Split(stem, "_")
		if len(parts) != 2 {
			b.logger.Warn("skipping file with malformed name",
				zap.String("file", name))
			skip(name, SkipMalformedFilename)
			continue
		}
		externalID, sourceDocID := parts[0], parts[1]

		var originCode string
		switch ext {
		case ".pdf":
			originCode = domain.OriginPatientFile
		case ".docx":
			originCode = domain.OriginRadiologySoftware
		}

		text, err := b.extractor(filepath.Join(b.dir, name))
		if err != nil || text == "" {
			b.logger.Warn("skipping empty or unreadable file",
				zap.String("file", name),
				zap.Error(err))
			skip(name, SkipUnreadable)
			continue
		}

		documentDate, author := extract.Metadata(text)

		patientNum, found, err := b.identities.LookupPatientNum(ctx, externalID)
		if err != nil {
			return nil, report, err
		}
		if !found {
			b.logger.Warn("skipping document for unknown patient",
				zap.String("file", name),
				zap.String("hospital_patient_id", externalID))
			skip(name, SkipUnknownPatient)
			continue
		}

		documents = append(documents, domain.Document{
			DocumentNum:        documentNum,
			PatientNum:         patientNum,
			DocumentOriginCode: originCode,
			DocumentDate:       optional(documentDate),
			IDDocSource:        sourceDocID,
			DocumentType:       strings.TrimPrefix(ext, "."),
			DisplayedText:      text,
			Author:             optional(author),
			UploadID:           uploadID,
		})
		documentNum++
		report.Processed++
	}

	return documents, report, nil
}
