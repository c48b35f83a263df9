// Package source loads the synchronization inputs: the patient export
// spreadsheet and the clinical document directory.
package source

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrSourceUnavailable reports that the patient spreadsheet cannot be
// read at all. The caller must abort the patient pass without touching
// the warehouse.
var ErrSourceUnavailable = errors.New("patient source unavailable")

// Spreadsheet columns of the patient export. The hospital identifier is
// always carried as opaque text so leading zeros survive.
var requiredColumns = []string{
	"HOSPITAL_PATIENT_ID",
	"NOM",
	"PRENOM",
	"DATE_NAISSANCE",
	"SEXE",
	"NOM_JEUNE_FILLE",
	"ADRESSE",
	"TEL",
	"CP",
	"VILLE",
	"DATE_MORT",
	"PAYS",
}

// PatientRow is one cleaned spreadsheet row. All values are raw cell text.
type PatientRow struct {
	HospitalPatientID string
	LastName          string
	FirstName         string
	BirthDate         string
	Sex               string
	MaidenName        string
	Address           string
	Phone             string
	ZipCode           string
	City              string
	DeathDate         string
	Country           string
}

// dedupeKey is the natural-key tuple used to drop duplicate rows.
type dedupeKey struct {
	lastName  string
	firstName string
	birthDate string
	address   string
	phone     string
}

// ExcelReader loads and cleans the patient export spreadsheet.
type ExcelReader struct {
	path      string
	worksheet string
	logger    *zap.Logger
}

// NewExcelReader creates a reader for the given workbook path and
// worksheet name.
func NewExcelReader(path, worksheet string, logger *zap.Logger) *ExcelReader {
	return &ExcelReader{
		path:      path,
		worksheet: worksheet,
		logger:    logger,
	}
}

// Load reads the worksheet and removes duplicate rows by (last name,
// first name, birth date, address, phone); the first occurrence wins and
// the original order is otherwise preserved.
func (r *ExcelReader) Load() ([]PatientRow, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.worksheet)
	if err != nil {
		return nil, fmt.Errorf("%w: worksheet %q: %v", ErrSourceUnavailable, r.worksheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet %q is empty", ErrSourceUnavailable, r.worksheet)
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headerMap[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSourceUnavailable, col)
		}
	}

	cell := func(row []string, col string) string {
		idx := headerMap[col]
		if idx < len(row) {
			return row[idx]
		}
		return ""
	}

	cleaned := make([]PatientRow, 0, len(rows)-1)
	seen := make(map[dedupeKey]struct{}, len(rows)-1)
	duplicates := 0
	for _, row := range rows[1:] {
		pr := PatientRow{
			HospitalPatientID: cell(row, "HOSPITAL_PATIENT_ID"),
			LastName:          cell(row, "NOM"),
			FirstName:         cell(row, "PRENOM"),
			BirthDate:         cell(row, "DATE_NAISSANCE"),
			Sex:               cell(row, "SEXE"),
			MaidenName:        cell(row, "NOM_JEUNE_FILLE"),
			Address:           cell(row, "ADRESSE"),
			Phone:             cell(row, "TEL"),
			ZipCode:           cell(row, "CP"),
			City:              cell(row, "VILLE"),
			DeathDate:         cell(row, "DATE_MORT"),
			Country:           cell(row, "PAYS"),
		}

		key := dedupeKey{
			lastName:  pr.LastName,
			firstName: pr.FirstName,
			birthDate: pr.BirthDate,
			address:   pr.Address,
			phone:     pr.Phone,
		}
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, pr)
	}

	r.logger.Info("patient spreadsheet loaded",
		zap.String("path", r.path),
		zap.Int("rows", len(cleaned)),
		zap.Int("duplicates_dropped", duplicates),
	)
	return cleaned, nil
}
