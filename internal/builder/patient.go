// Package builder maps cleaned source rows and document files into
// warehouse-shaped records, assigning per-batch surrogate numbers.
package builder

import (
	"time"

	"github.com/fcolobe/data-engineer-challenge/internal/domain"
	"github.com/fcolobe/data-engineer-challenge/internal/source"
)

const updateDateLayout = "02/01/2006"

// BuildPatientRecords maps de-duplicated spreadsheet rows into one patient
// record and one identity record each. The row at 0-based position i gets
// PATIENT_NUM i+1, so a batch of N rows uses exactly the keys 1..N.
func BuildPatientRecords(rows []source.PatientRow, uploadID int64) ([]domain.Patient, []domain.PatientIdentity) {
	updateDate := time.Now().Format(updateDateLayout)

	patients := make([]domain.Patient, 0, len(rows))
	identities := make([]domain.PatientIdentity, 0, len(rows))

	for i, row := range rows {
		patientNum := int64(i + 1)

		deathCode := "0"
		if row.DeathDate != "" {
			deathCode = "1"
		}

		patients = append(patients, domain.Patient{
			PatientNum:       patientNum,
			Lastname:         row.LastName,
			Firstname:        row.FirstName,
			BirthDate:        row.BirthDate,
			Sex:              row.Sex,
			MaidenName:       optional(row.MaidenName),
			ResidenceAddress: row.Address,
			PhoneNumber:      row.Phone,
			ZipCode:          row.ZipCode,
			ResidenceCity:    row.City,
			DeathDate:        optional(row.DeathDate),
			ResidenceCountry: row.Country,
			DeathCode:        deathCode,
			UpdateDate:       updateDate,
			UploadID:         uploadID,
		})

		masterFlag := "0"
		if row.HospitalPatientID != "" {
			masterFlag = "1"
		}

		identities = append(identities, domain.PatientIdentity{
			PatientNum:        patientNum,
			HospitalPatientID: row.HospitalPatientID,
			OriginPatientID:   domain.OriginSIH,
			MasterPatientID:   masterFlag,
			UploadID:          uploadID,
		})
	}

	return patients, identities
}

// optional maps an empty cell to NULL.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
