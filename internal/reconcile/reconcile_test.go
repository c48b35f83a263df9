package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testRecord is a minimal warehouse row for engine tests.
type testRecord struct {
	num      int64
	lastname string
	uploadID int64
}

func (r testRecord) Key() int64 { return r.num }

func (r testRecord) Columns() []string {
	return []string{"PATIENT_NUM", "LASTNAME", "UPLOAD_ID"}
}

func (r testRecord) Values() []any {
	return []any{r.num, r.lastname, r.uploadID}
}

// docRecord is a testRecord shaped for the DWH_DOCUMENT table, whose key
// column is DOCUMENT_NUM.
type docRecord struct {
	testRecord
}

func (r docRecord) Columns() []string {
	return []string{"DOCUMENT_NUM", "LASTNAME", "UPLOAD_ID"}
}

func setupEngine(t *testing.T) (*Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewEngine(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func TestReconcile_PartitionsIntoUpdateAndInsert(t *testing.T) {
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT PATIENT_NUM FROM DWH_PATIENT`).
		WillReturnRows(sqlmock.NewRows([]string{"PATIENT_NUM"}).AddRow(1).AddRow(2))
	mock.ExpectExec(`UPDATE DWH_PATIENT SET LASTNAME = \?, UPLOAD_ID = \? WHERE PATIENT_NUM = \?`).
		WithArgs("DUPONT", int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE DWH_PATIENT SET`).
		WithArgs("MARTIN", int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO DWH_PATIENT \(PATIENT_NUM, LASTNAME, UPLOAD_ID\) VALUES \(\?, \?, \?\)`).
		WithArgs(int64(3), "PETIT", int64(5)).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	err := engine.Reconcile(context.Background(), "DWH_PATIENT", "PATIENT_NUM", []Record{
		testRecord{1, "DUPONT", 5},
		testRecord{2, "MARTIN", 5},
		testRecord{3, "PETIT", 5},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_UpdatesAlwaysBeforeInserts(t *testing.T) {
	engine, mock := setupEngine(t)

	// The insert candidate comes first in the batch, but the update
	// phase still runs first.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DOCUMENT_NUM FROM DWH_DOCUMENT`).
		WillReturnRows(sqlmock.NewRows([]string{"DOCUMENT_NUM"}).AddRow(1))
	mock.ExpectExec(`UPDATE DWH_DOCUMENT SET`).
		WithArgs("ANCIEN", int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO DWH_DOCUMENT`).
		WithArgs(int64(9), "NOUVEAU", int64(2)).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	err := engine.Reconcile(context.Background(), "DWH_DOCUMENT", "DOCUMENT_NUM", []Record{
		docRecord{testRecord{9, "NOUVEAU", 2}},
		docRecord{testRecord{1, "ANCIEN", 2}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_SecondRunIsAllUpdates(t *testing.T) {
	// Idempotency: once the candidate keys are all present, a re-run
	// issues only updates and the key set stays the same.
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT PATIENT_NUM FROM DWH_PATIENT`).
		WillReturnRows(sqlmock.NewRows([]string{"PATIENT_NUM"}).AddRow(1).AddRow(2))
	mock.ExpectExec(`UPDATE DWH_PATIENT SET`).
		WithArgs("DUPONT", int64(6), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE DWH_PATIENT SET`).
		WithArgs("MARTIN", int64(6), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := engine.Reconcile(context.Background(), "DWH_PATIENT", "PATIENT_NUM", []Record{
		testRecord{1, "DUPONT", 6},
		testRecord{2, "MARTIN", 6},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_EmptyBatchTouchesNothing(t *testing.T) {
	engine, mock := setupEngine(t)

	err := engine.Reconcile(context.Background(), "DWH_PATIENT", "PATIENT_NUM", nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_SnapshotFailureRollsBack(t *testing.T) {
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT PATIENT_NUM FROM DWH_PATIENT`).
		WillReturnError(errors.New("table is locked"))
	mock.ExpectRollback()

	err := engine.Reconcile(context.Background(), "DWH_PATIENT", "PATIENT_NUM", []Record{
		testRecord{1, "DUPONT", 1},
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_WriteFailureRollsBackBothPhases(t *testing.T) {
	engine, mock := setupEngine(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT PATIENT_NUM FROM DWH_PATIENT`).
		WillReturnRows(sqlmock.NewRows([]string{"PATIENT_NUM"}).AddRow(1))
	mock.ExpectExec(`UPDATE DWH_PATIENT SET`).
		WithArgs("DUPONT", int64(3), int64(1)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := engine.Reconcile(context.Background(), "DWH_PATIENT", "PATIENT_NUM", []Record{
		testRecord{1, "DUPONT", 3},
		testRecord{2, "MARTIN", 3},
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
