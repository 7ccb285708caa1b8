package patients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/ids"
	"github.com/sanarehealth/medledger-backend/pkg/security"
)

// Accounts created without an explicit password get this placeholder until
// the patient sets their own.
const defaultPassword = "temp123"

// Service defines patient account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Patient, error)
	GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
}

// RegisterInput captures the data needed to create a patient account.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	DateOfBirth      time.Time
	BloodGroup       string
	EmergencyContact string
	Address          string
	RegisteredBy     string
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

// NewService wires the patient account service.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("patients repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Patient, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup patient email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	password := input.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	registeredBy := input.RegisteredBy
	if registeredBy == "" {
		registeredBy = "self"
	}

	patient := &models.Patient{
		PatientID:        ids.New(ids.PrefixPatient),
		Name:             input.Name,
		Email:            email,
		PasswordHash:     hash,
		DateOfBirth:      input.DateOfBirth,
		BloodGroup:       input.BloodGroup,
		EmergencyContact: input.EmergencyContact,
		Address:          input.Address,
		RegisteredBy:     registeredBy,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create patient")
	}
	return patient, nil
}

func (s *service) GetByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	if patientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "patient id is required")
	}
	patient, err := s.repo.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup patient")
	}
	if patient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "patient not found")
	}
	return patient, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	patient, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup patient email")
	}
	return patient, nil
}

func validateRegister(input RegisterInput) error {
	missing := []string{}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.DateOfBirth.IsZero() {
		missing = append(missing, "dateOfBirth")
	}
	if strings.TrimSpace(input.BloodGroup) == "" {
		missing = append(missing, "bloodGroup")
	}
	if strings.TrimSpace(input.EmergencyContact) == "" {
		missing = append(missing, "emergencyContact")
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
