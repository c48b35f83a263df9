package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcolobe/data-engineer-challenge/internal/domain"
	"github.com/fcolobe/data-engineer-challenge/internal/source"
)

func TestBuildPatientRecords_AssignsDensePositionalKeys(t *testing.T) {
	rows := []source.PatientRow{
		{HospitalPatientID: "001", LastName: "DUPONT", FirstName: "JEAN"},
		{HospitalPatientID: "002", LastName: "MARTIN", FirstName: "ANNE"},
		{HospitalPatientID: "003", LastName: "PETIT", FirstName: "CLAIRE"},
	}

	patients, identities := BuildPatientRecords(rows, 7)

	require.Len(t, patients, 3)
	require.Len(t, identities, 3)
	for i := range patients {
		assert.Equal(t, int64(i+1), patients[i].PatientNum)
		assert.Equal(t, int64(i+1), identities[i].PatientNum)
		assert.Equal(t, int64(7), patients[i].UploadID)
		assert.Equal(t, int64(7), identities[i].UploadID)
	}
}

func TestBuildPatientRecords_DeathCode(t *testing.T) {
	rows := []source.PatientRow{
		{LastName: "VIVANT", DeathDate: ""},
		{LastName: "DECEDE", DeathDate: "12/11/2019"},
	}

	patients, _ := BuildPatientRecords(rows, 1)

	assert.Equal(t, "0", patients[0].DeathCode)
	assert.Nil(t, patients[0].DeathDate)

	assert.Equal(t, "1", patients[1].DeathCode)
	require.NotNil(t, patients[1].DeathDate)
	assert.Equal(t, "12/11/2019", *patients[1].DeathDate)
}

func TestBuildPatientRecords_MasterFlagAndOrigin(t *testing.T) {
	rows := []source.PatientRow{
		{HospitalPatientID: "00042"},
		{HospitalPatientID: ""},
	}

	_, identities := BuildPatientRecords(rows, 1)

	assert.Equal(t, "1", identities[0].MasterPatientID)
	assert.Equal(t, "00042", identities[0].HospitalPatientID)
	assert.Equal(t, "0", identities[1].MasterPatientID)
	assert.Equal(t, domain.OriginSIH, identities[0].OriginPatientID)
	assert.Equal(t, domain.OriginSIH, identities[1].OriginPatientID)
}

func TestBuildPatientRecords_UpdateDateStamp(t *testing.T) {
	patients, _ := BuildPatientRecords([]source.PatientRow{{LastName: "X"}}, 1)

	require.Len(t, patients, 1)
	stamp, err := time.Parse("02/01/2006", patients[0].UpdateDate)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), stamp, 48*time.Hour)
}

func TestBuildPatientRecords_OptionalFieldsNil(t *testing.T) {
	patients, _ := BuildPatientRecords([]source.PatientRow{{LastName: "X", MaidenName: ""}}, 1)

	p := patients[0]
	assert.Nil(t, p.MaidenName)
	assert.Nil(t, p.ResidenceLatitude)
	assert.Nil(t, p.BirthCountry)
}
