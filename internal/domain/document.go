package domain

// Document origin codes, derived from the source file extension.
const (
	OriginPatientFile       = "DOSSIER_PATIENT"
	OriginRadiologySoftware = "RADIOLOGIE_SOFTWARE"
)

// Document is one row of DWH_DOCUMENT. DOCUMENT_NUM is a dense 1-based
// counter over the files that survived a document pass, in directory
// iteration order. The *_DONE_FLAG columns are consumed by downstream
// enrichment jobs and always start at 0.
type Document struct {
	DocumentNum            int64   `db:"DOCUMENT_NUM"`
	PatientNum             int64   `db:"PATIENT_NUM"`
	EncounterNum           *int64  `db:"ENCOUNTER_NUM"`
	Title                  *string `db:"TITLE"`
	DocumentOriginCode     string  `db:"DOCUMENT_ORIGIN_CODE"`
	DocumentDate           *string `db:"DOCUMENT_DATE"`
	IDDocSource            string  `db:"ID_DOC_SOURCE"`
	DocumentType           string  `db:"DOCUMENT_TYPE"`
	DisplayedText          string  `db:"DISPLAYED_TEXT"`
	Author                 *string `db:"AUTHOR"`
	UnitCode               *string `db:"UNIT_CODE"`
	UnitNum                *int64  `db:"UNIT_NUM"`
	DepartmentNum          *int64  `db:"DEPARTMENT_NUM"`
	ExtractContextDoneFlag int     `db:"EXTRACTCONTEXT_DONE_FLAG"`
	ExtractConceptDoneFlag int     `db:"EXTRACTCONCEPT_DONE_FLAG"`
	EnrGeneDoneFlag        int     `db:"ENRGENE_DONE_FLAG"`
	EnrichTextDoneFlag     int     `db:"ENRICHTEXT_DONE_FLAG"`
	UploadID               int64   `db:"UPLOAD_ID"`
}

var documentColumns = []string{
	"DOCUMENT_NUM",
	"PATIENT_NUM",
	"ENCOUNTER_NUM",
	"TITLE",
	"DOCUMENT_ORIGIN_CODE",
	"DOCUMENT_DATE",
	"ID_DOC_SOURCE",
	"DOCUMENT_TYPE",
	"DISPLAYED_TEXT",
	"AUTHOR",
	"UNIT_CODE",
	"UNIT_NUM",
	"DEPARTMENT_NUM",
	"EXTRACTCONTEXT_DONE_FLAG",
	"EXTRACTCONCEPT_DONE_FLAG",
	"ENRGENE_DONE_FLAG",
	"ENRICHTEXT_DONE_FLAG",
	"UPLOAD_ID",
}

// Key returns the surrogate key value.
func (d Document) Key() int64 { return d.DocumentNum }

// Columns returns the DWH_DOCUMENT column names in insert order.
func (d Document) Columns() []string { return documentColumns }

// Values returns the row values matching Columns.
func (d Document) Values() []any {
	return []any{
		d.DocumentNum,
		d.PatientNum,
		d.EncounterNum,
		d.Title,
		d.DocumentOriginCode,
		d.DocumentDate,
		d.IDDocSource,
		d.DocumentType,
		d.DisplayedText,
		d.Author,
		d.UnitCode,
		d.UnitNum,
		d.DepartmentNum,
		d.ExtractContextDoneFlag,
		d.ExtractConceptDoneFlag,
		d.EnrGeneDoneFlag,
		d.EnrichTextDoneFlag,
		d.UploadID,
	}
}
