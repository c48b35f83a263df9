package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Warehouse tables. Column types stay on TEXT/INTEGER so the same DDL
// works for both SQLite and Postgres.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS DWH_PATIENT (
		PATIENT_NUM         INTEGER PRIMARY KEY,
		LASTNAME            TEXT,
		FIRSTNAME           TEXT,
		BIRTH_DATE          TEXT,
		SEX                 TEXT,
		MAIDEN_NAME         TEXT,
		RESIDENCE_ADDRESS   TEXT,
		PHONE_NUMBER        TEXT,
		ZIP_CODE            TEXT,
		RESIDENCE_CITY      TEXT,
		DEATH_DATE          TEXT,
		RESIDENCE_COUNTRY   TEXT,
		RESIDENCE_LATITUDE  TEXT,
		RESIDENCE_LONGITUDE TEXT,
		DEATH_CODE          TEXT,
		UPDATE_DATE         TEXT,
		BIRTH_COUNTRY       TEXT,
		BIRTH_CITY          TEXT,
		BIRTH_ZIP_CODE      TEXT,
		BIRTH_LATITUDE      TEXT,
		BIRTH_LONGITUDE     TEXT,
		UPLOAD_ID           INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS DWH_PATIENT_IPPHIST (
		PATIENT_NUM         INTEGER PRIMARY KEY,
		HOSPITAL_PATIENT_ID TEXT,
		ORIGIN_PATIENT_ID   TEXT,
		MASTER_PATIENT_ID   TEXT,
		UPLOAD_ID           INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS DWH_DOCUMENT (
		DOCUMENT_NUM             INTEGER PRIMARY KEY,
		PATIENT_NUM              INTEGER,
		ENCOUNTER_NUM            INTEGER,
		TITLE                    TEXT,
		DOCUMENT_ORIGIN_CODE     TEXT,
		DOCUMENT_DATE            TEXT,
		ID_DOC_SOURCE            TEXT,
		DOCUMENT_TYPE            TEXT,
		DISPLAYED_TEXT           TEXT,
		AUTHOR                   TEXT,
		UNIT_CODE                TEXT,
		UNIT_NUM                 INTEGER,
		DEPARTMENT_NUM           INTEGER,
		EXTRACTCONTEXT_DONE_FLAG INTEGER,
		EXTRACTCONCEPT_DONE_FLAG INTEGER,
		ENRGENE_DONE_FLAG        INTEGER,
		ENRICHTEXT_DONE_FLAG     INTEGER,
		UPLOAD_ID                INTEGER
	)`,
}

// EnsureSchema creates the warehouse tables when they do not exist yet, so
// a fresh deployment starts against an empty but valid warehouse.
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure warehouse schema: %w", err)
		}
	}
	return nil
}
