package domain

// Warehouse table and key column names.
const (
	TablePatient         = "DWH_PATIENT"
	TablePatientIdentity = "DWH_PATIENT_IPPHIST"
	TableDocument        = "DWH_DOCUMENT"

	PatientKeyColumn  = "PATIENT_NUM"
	DocumentKeyColumn = "DOCUMENT_NUM"
)

// Patient is one row of DWH_PATIENT. PATIENT_NUM is the 1-based position
// of the row within its de-duplicated source batch; it is only stable as
// long as the source set and order do not change.
type Patient struct {
	PatientNum         int64   `db:"PATIENT_NUM"`
	Lastname           string  `db:"LASTNAME"`
	Firstname          string  `db:"FIRSTNAME"`
	BirthDate          string  `db:"BIRTH_DATE"`
	Sex                string  `db:"SEX"`
	MaidenName         *string `db:"MAIDEN_NAME"`
	ResidenceAddress   string  `db:"RESIDENCE_ADDRESS"`
	PhoneNumber        string  `db:"PHONE_NUMBER"`
	ZipCode            string  `db:"ZIP_CODE"`
	ResidenceCity      string  `db:"RESIDENCE_CITY"`
	DeathDate          *string `db:"DEATH_DATE"`
	ResidenceCountry   string  `db:"RESIDENCE_COUNTRY"`
	ResidenceLatitude  *string `db:"RESIDENCE_LATITUDE"`
	ResidenceLongitude *string `db:"RESIDENCE_LONGITUDE"`
	DeathCode          string  `db:"DEATH_CODE"`
	UpdateDate         string  `db:"UPDATE_DATE"`
	BirthCountry       *string `db:"BIRTH_COUNTRY"`
	BirthCity          *string `db:"BIRTH_CITY"`
	BirthZipCode       *string `db:"BIRTH_ZIP_CODE"`
	BirthLatitude      *string `db:"BIRTH_LATITUDE"`
	BirthLongitude     *string `db:"BIRTH_LONGITUDE"`
	UploadID           int64   `db:"UPLOAD_ID"`
}

var patientColumns = []string{
	"PATIENT_NUM",
	"LASTNAME",
	"FIRSTNAME",
	"BIRTH_DATE",
	"SEX",
	"MAIDEN_NAME",
	"RESIDENCE_ADDRESS",
	"PHONE_NUMBER",
	"ZIP_CODE",
	"RESIDENCE_CITY",
	"DEATH_DATE",
	"RESIDENCE_COUNTRY",
	"RESIDENCE_LATITUDE",
	"RESIDENCE_LONGITUDE",
	"DEATH_CODE",
	"UPDATE_DATE",
	"BIRTH_COUNTRY",
	"BIRTH_CITY",
	"BIRTH_ZIP_CODE",
	"BIRTH_LATITUDE",
	"BIRTH_LONGITUDE",
	"UPLOAD_ID",
}

// Key returns the surrogate key value.
func (p Patient) Key() int64 { return p.PatientNum }

// Columns returns the DWH_PATIENT column names in insert order.
func (p Patient) Columns() []string { return patientColumns }

// Values returns the row values matching Columns.
func (p Patient) Values() []any {
	return []any{
		p.PatientNum,
		p.Lastname,
		p.Firstname,
		p.BirthDate,
		p.Sex,
		p.MaidenName,
		p.ResidenceAddress,
		p.PhoneNumber,
		p.ZipCode,
		p.ResidenceCity,
		p.DeathDate,
		p.ResidenceCountry,
		p.ResidenceLatitude,
		p.ResidenceLongitude,
		p.DeathCode,
		p.UpdateDate,
		p.BirthCountry,
		p.BirthCity,
		p.BirthZipCode,
		p.BirthLatitude,
		p.BirthLongitude,
		p.UploadID,
	}
}
