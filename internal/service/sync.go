// Package service ties the pipeline together: one sequential
// poll-act-sleep cycle driving the patient and document synchronization
// passes.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fcolobe/data-engineer-challenge/internal/builder"
	"github.com/fcolobe/data-engineer-challenge/internal/config"
	"github.com/fcolobe/data-engineer-challenge/internal/database"
	"github.com/fcolobe/data-engineer-challenge/internal/domain"
	"github.com/fcolobe/data-engineer-challenge/internal/extract"
	"github.com/fcolobe/data-engineer-challenge/internal/reconcile"
	"github.com/fcolobe/data-engineer-challenge/internal/repository"
	"github.com/fcolobe/data-engineer-challenge/internal/source"
	"github.com/fcolobe/data-engineer-challenge/internal/watcher"
)

// SyncService runs the perpetual synchronization loop. Each source keeps
// its own generation counter; the value 1 means "never yet run" and
// forces the first pass regardless of detected changes.
type SyncService struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB

	reader *source.ExcelReader
	docs   *builder.DocumentBuilder
	engine *reconcile.Engine

	lastSeen         watcher.Snapshot
	excelModTime     time.Time
	patientUploadID  int64
	documentUploadID int64
}

// New opens the warehouse and wires the pipeline. A database that cannot
// be opened here is the only fatal startup condition.
func New(cfg *config.Config, logger *zap.Logger) (*SyncService, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		database.Close(db)
		return nil, err
	}

	identities := repository.NewIdentityRepository(db, logger)

	return &SyncService{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		reader:           source.NewExcelReader(cfg.ExcelPath(), cfg.Source.Worksheet, logger),
		docs:             builder.NewDocumentBuilder(cfg.Source.Directory, identities, extract.Text, logger),
		engine:           reconcile.NewEngine(db, logger),
		patientUploadID:  1,
		documentUploadID: 1,
	}, nil
}

// Close releases the warehouse connection.
func (s *SyncService) Close() error {
	return database.Close(s.db)
}

// Start seeds the watch state, runs a first cycle immediately and then
// one cycle per poll interval until the context is cancelled.
func (s *SyncService) Start(ctx context.Context) error {
	s.lastSeen = watcher.Take(s.cfg.Source.Directory)
	if t, err := watcher.ModTime(s.cfg.ExcelPath()); err == nil {
		s.excelModTime = t
	} else {
		s.logger.Warn("patient spreadsheet not found at startup",
			zap.String("path", s.cfg.ExcelPath()),
			zap.Error(err))
	}

	interval := time.Duration(s.cfg.Poll.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("starting sync loop", zap.Duration("interval", interval))

	s.RunCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle performs one poll-act cycle: detect changes, run the passes
// that need to run, advance the generation counters. Exported so tests
// can drive cycles deterministically without the ticker.
func (s *SyncService) RunCycle(ctx context.Context) {
	log := s.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("checking for source changes")

	changes, next := watcher.Diff(s.cfg.Source.Directory, s.lastSeen)
	s.lastSeen = next

	excelPath := s.cfg.ExcelPath()
	excelChanged := watcher.SpreadsheetChanged(excelPath, s.excelModTime)

	ranAny := false

	if excelChanged || s.patientUploadID == 1 {
		if s.patientUploadID == 1 {
			log.Info("initializing patient and identity tables")
		} else {
			log.Info("patient spreadsheet modified, updating")
		}

		if err := s.runPatientPass(ctx, log, s.patientUploadID); err != nil {
			log.Error("patient pass failed",
				zap.Int64("upload_id", s.patientUploadID),
				zap.Error(err))
		} else {
			log.Info("patient and identity tables updated",
				zap.Int64("upload_id", s.patientUploadID))
		}

		// The attempt consumes the generation and the observed mtime
		// either way; the next spreadsheet change is the retry.
		if t, err := watcher.ModTime(excelPath); err == nil {
			s.excelModTime = t
		}
		s.patientUploadID++
		ranAny = true
	}

	if changes.Any() || s.documentUploadID == 1 {
		if s.documentUploadID == 1 {
			log.Info("initializing document table")
		}
		logChangeSet(log, "new files detected", changes.Added)
		logChangeSet(log, "deleted files detected", changes.Removed)
		logChangeSet(log, "modified files detected", changes.Modified)

		if err := s.runDocumentPass(ctx, log, s.documentUploadID); err != nil {
			log.Error("document pass failed",
				zap.Int64("upload_id", s.documentUploadID),
				zap.Error(err))
		} else {
			log.Info("document table updated",
				zap.Int64("upload_id", s.documentUploadID))
		}

		s.documentUploadID++
		ranAny = true
	}

	if !ranAny {
		log.Info("no changes found")
	}
}

// runPatientPass rebuilds patient and identity records from the full
// spreadsheet content and reconciles both tables. A source failure aborts
// before any warehouse write.
func (s *SyncService) runPatientPass(ctx context.Context, log *zap.Logger, uploadID int64) error {
	rows, err := s.reader.Load()
	if err != nil {
		return err
	}

	patients, identities := builder.BuildPatientRecords(rows, uploadID)
	log.Info("patient records built",
		zap.Int("count", len(patients)),
		zap.Int64("upload_id", uploadID))

	if err := s.engine.Reconcile(ctx, domain.TablePatient, domain.PatientKeyColumn, toRecords(patients)); err != nil {
		return err
	}
	return s.engine.Reconcile(ctx, domain.TablePatientIdentity, domain.PatientKeyColumn, toRecords(identities))
}

// runDocumentPass re-scans the document directory, rebuilds document
// records and reconciles the document table.
func (s *SyncService) runDocumentPass(ctx context.Context, log *zap.Logger, uploadID int64) error {
	files := source.ListDocumentFiles(s.cfg.Source.Directory, log)

	documents, report, err := s.docs.Build(ctx, files, uploadID)
	if err != nil {
		return err
	}
	log.Info("document records built",
		zap.Int("processed", report.Processed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int64("upload_id", uploadID))

	return s.engine.Reconcile(ctx, domain.TableDocument, domain.DocumentKeyColumn, toRecords(documents))
}

func logChangeSet(log *zap.Logger, msg string, set map[string]struct{}) {
	if len(set) == 0 {
		return
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	log.Info(msg, zap.Strings("files", names))
}

func toRecords[T reconcile.Record](items []T) []reconcile.Record {
	records := make([]reconcile.Record, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}
