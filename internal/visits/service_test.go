package visits

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *models.Patient) {
	t.Helper()
	dsn := "file:visits_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Patient{}, &models.Visit{}))

	patientSvc, err := patients.NewService(patients.NewRepository(db), config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)

	patient, err := patientSvc.Register(context.Background(), patients.RegisterInput{
		Name:             "Jordan Reyes",
		Email:            "jordan@example.com",
		DateOfBirth:      time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		BloodGroup:       "O-",
		EmergencyContact: "+1-555-0100",
		Address:          "12 Elm St",
	})
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), patientSvc)
	require.NoError(t, err)
	return svc, patient
}

func validVisit(patientID string, date time.Time) AddVisitInput {
	return AddVisitInput{
		PatientID:    patientID,
		HospitalID:   "HOSP-1",
		HospitalName: "General",
		VisitDate:    date,
		Diagnosis:    "seasonal flu",
		Prescription: "rest and fluids",
		DoctorName:   "Dr. Okafor",
	}
}

func TestAddVisitRequiresKnownPatient(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.AddVisit(context.Background(), validVisit("PAT-MISSING", time.Now()))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddVisitValidation(t *testing.T) {
	t.Parallel()

	svc, patient := newTestService(t)
	input := validVisit(patient.PatientID, time.Now())
	input.Diagnosis = ""

	_, err := svc.AddVisit(context.Background(), input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListByPatientNewestFirst(t *testing.T) {
	t.Parallel()

	svc, patient := newTestService(t)
	ctx := context.Background()

	older := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	_, err := svc.AddVisit(ctx, validVisit(patient.PatientID, older))
	require.NoError(t, err)
	_, err = svc.AddVisit(ctx, validVisit(patient.PatientID, newer))
	require.NoError(t, err)

	visits, err := svc.ListByPatient(ctx, patient.PatientID)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.True(t, visits[0].VisitDate.After(visits[1].VisitDate))
}

func TestSearchBundlesProfileAndHistory(t *testing.T) {
	t.Parallel()

	svc, patient := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddVisit(ctx, validVisit(patient.PatientID, time.Now().UTC()))
	require.NoError(t, err)

	history, err := svc.Search(ctx, patient.PatientID)
	require.NoError(t, err)
	require.Equal(t, patient.PatientID, history.Patient.PatientID)
	require.Len(t, history.Visits, 1)

	_, err = svc.Search(ctx, "PAT-MISSING")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
