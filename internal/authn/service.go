// Package authn issues access tokens for the two account kinds. Patient and
// hospital logins match the identity fields the frontend stores after
// registration rather than a password challenge.
package authn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanarehealth/medledger-backend/internal/hospitals"
	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/pkg/auth"
	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

// Service authenticates accounts and mints access tokens.
type Service interface {
	LoginPatient(ctx context.Context, input PatientLoginInput) (*PatientSession, error)
	LoginHospital(ctx context.Context, input HospitalLoginInput) (*HospitalSession, error)
}

// PatientLoginInput is the patient credential triple.
type PatientLoginInput struct {
	Email     string
	PatientID string
	Name      string
}

// HospitalLoginInput is the hospital credential triple.
type HospitalLoginInput struct {
	Email        string
	HospitalID   string
	HospitalName string
}

// PatientSession pairs the account with its freshly minted token.
type PatientSession struct {
	Patient *models.Patient
	Token   string
}

// HospitalSession pairs the account with its freshly minted token.
type HospitalSession struct {
	Hospital *models.Hospital
	Token    string
}

type service struct {
	patients  patients.Service
	hospitals hospitals.Service
	jwt       config.JWTConfig
	now       func() time.Time
}

// NewService wires the authentication service.
func NewService(patientSvc patients.Service, hospitalSvc hospitals.Service, jwt config.JWTConfig) (Service, error) {
	if patientSvc == nil || hospitalSvc == nil {
		return nil, fmt.Errorf("patient and hospital services required")
	}
	return &service{
		patients:  patientSvc,
		hospitals: hospitalSvc,
		jwt:       jwt,
		now:       time.Now,
	}, nil
}

func (s *service) LoginPatient(ctx context.Context, input PatientLoginInput) (*PatientSession, error) {
	if input.Email == "" || input.PatientID == "" || input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, patient id and name are required")
	}

	patient, err := s.patients.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if patient == nil ||
		patient.PatientID != input.PatientID ||
		!strings.EqualFold(patient.Name, input.Name) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		SubjectID: patient.PatientID,
		Email:     patient.Email,
		Role:      auth.RolePatient,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return &PatientSession{Patient: patient, Token: token}, nil
}

func (s *service) LoginHospital(ctx context.Context, input HospitalLoginInput) (*HospitalSession, error) {
	if input.Email == "" || input.HospitalID == "" || input.HospitalName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, hospital id and name are required")
	}

	hospital, err := s.hospitals.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if hospital == nil ||
		hospital.HospitalID != input.HospitalID ||
		!strings.EqualFold(hospital.HospitalName, input.HospitalName) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		SubjectID: hospital.HospitalID,
		Email:     hospital.Email,
		Role:      auth.RoleHospital,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	return &HospitalSession{Hospital: hospital, Token: token}, nil
}
