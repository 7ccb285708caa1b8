package visits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/ids"
)

// Service defines visit record operations.
type Service interface {
	AddVisit(ctx context.Context, input AddVisitInput) (*models.Visit, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Visit, error)
	Search(ctx context.Context, patientID string) (*PatientHistory, error)
}

// AddVisitInput captures a hospital-authored clinical record.
type AddVisitInput struct {
	PatientID    string
	HospitalID   string
	HospitalName string
	VisitDate    time.Time
	Diagnosis    string
	Prescription string
	LabResults   string
	DoctorName   string
	Notes        string
}

// PatientHistory bundles a patient profile with their visit history.
type PatientHistory struct {
	Patient *models.Patient `json:"patient"`
	Visits  []models.Visit  `json:"visits"`
}

type service struct {
	repo     Repository
	patients patients.Service
	now      func() time.Time
}

// NewService wires the visits service.
func NewService(repo Repository, patientSvc patients.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("visits repository required")
	}
	if patientSvc == nil {
		return nil, fmt.Errorf("patients service required")
	}
	return &service{repo: repo, patients: patientSvc, now: time.Now}, nil
}

func (s *service) AddVisit(ctx context.Context, input AddVisitInput) (*models.Visit, error) {
	if err := validateAddVisit(input); err != nil {
		return nil, err
	}

	// Visits attach only to known patients.
	if _, err := s.patients.GetByPatientID(ctx, input.PatientID); err != nil {
		return nil, err
	}

	visitDate := input.VisitDate
	if visitDate.IsZero() {
		visitDate = s.now().UTC()
	}

	visit := &models.Visit{
		VisitID:      ids.New(ids.PrefixVisit),
		PatientID:    input.PatientID,
		HospitalID:   input.HospitalID,
		HospitalName: input.HospitalName,
		VisitDate:    visitDate,
		Diagnosis:    input.Diagnosis,
		Prescription: input.Prescription,
		LabResults:   input.LabResults,
		DoctorName:   input.DoctorName,
		Notes:        input.Notes,
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create visit")
	}
	return visit, nil
}

func (s *service) ListByPatient(ctx context.Context, patientID string) ([]models.Visit, error) {
	if patientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "patient id is required")
	}
	visits, err := s.repo.ListByPatientID(ctx, patientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list visits")
	}
	return visits, nil
}

func (s *service) Search(ctx context.Context, patientID string) (*PatientHistory, error) {
	patient, err := s.patients.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	visits, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &PatientHistory{Patient: patient, Visits: visits}, nil
}

func validateAddVisit(input AddVisitInput) error {
	missing := []string{}
	if strings.TrimSpace(input.PatientID) == "" {
		missing = append(missing, "patientId")
	}
	if strings.TrimSpace(input.HospitalID) == "" {
		missing = append(missing, "hospitalId")
	}
	if strings.TrimSpace(input.Diagnosis) == "" {
		missing = append(missing, "diagnosis")
	}
	if strings.TrimSpace(input.Prescription) == "" {
		missing = append(missing, "prescription")
	}
	if strings.TrimSpace(input.DoctorName) == "" {
		missing = append(missing, "doctorName")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
