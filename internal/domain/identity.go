package domain

// OriginSIH is the origin code of identifiers issued by the hospital
// information system.
const OriginSIH = "SIH"

// PatientIdentity is one row of DWH_PATIENT_IPPHIST. It links a warehouse
// patient number to the external hospital identifier found in the source
// spreadsheet. The table shares its key column with DWH_PATIENT: one
// identity row per patient row per batch.
type PatientIdentity struct {
	PatientNum        int64  `db:"PATIENT_NUM"`
	HospitalPatientID string `db:"HOSPITAL_PATIENT_ID"`
	OriginPatientID   string `db:"ORIGIN_PATIENT_ID"`
	MasterPatientID   string `db:"MASTER_PATIENT_ID"`
	UploadID          int64  `db:"UPLOAD_ID"`
}

var identityColumns = []string{
	"PATIENT_NUM",
	"HOSPITAL_PATIENT_ID",
	"ORIGIN_PATIENT_ID",
	"MASTER_PATIENT_ID",
	"UPLOAD_ID",
}

// Key returns the surrogate key value.
func (i PatientIdentity) Key() int64 { return i.PatientNum }

// Columns returns the DWH_PATIENT_IPPHIST column names in insert order.
func (i PatientIdentity) Columns() []string { return identityColumns }

// Values returns the row values matching Columns.
func (i PatientIdentity) Values() []any {
	return []any{
		i.PatientNum,
		i.HospitalPatientID,
		i.OriginPatientID,
		i.MasterPatientID,
		i.UploadID,
	}
}
