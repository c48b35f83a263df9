// Package repository holds the warehouse lookup queries used while
// building records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// IdentityRepository resolves external hospital identifiers against the
// DWH_PATIENT_IPPHIST table.
type IdentityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewIdentityRepository creates a new identity repository.
func NewIdentityRepository(db *sqlx.DB, logger *zap.Logger) *IdentityRepository {
	return &IdentityRepository{
		db:     db,
		logger: logger,
	}
}

// LookupPatientNum returns the warehouse patient number linked to the
// external hospital identifier. The boolean is false when the identifier
// is unknown; only real query failures return an error.
func (r *IdentityRepository) LookupPatientNum(ctx context.Context, hospitalPatientID string) (int64, bool, error) {
	query := r.db.Rebind(`SELECT PATIENT_NUM FROM DWH_PATIENT_IPPHIST WHERE HOSPITAL_PATIENT_ID = ?`)

	var patientNum int64
	err := r.db.QueryRowContext(ctx, query, hospitalPatientID).Scan(&patientNum)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up patient identity %q: %w", hospitalPatientID, err)
	}
	return patientNum, true, nil
}
