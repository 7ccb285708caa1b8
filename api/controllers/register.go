package controllers

import (
	"net/http"
	"time"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/hospitals"
	"github.com/sanarehealth/medledger-backend/internal/patients"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

type registerPatientRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password"`
	DateOfBirth      string `json:"dateOfBirth" validate:"required"`
	BloodGroup       string `json:"bloodGroup" validate:"required"`
	EmergencyContact string `json:"emergencyContact" validate:"required"`
	Address          string `json:"address" validate:"required"`
	RegisteredBy     string `json:"registeredBy"`
}

// RegisterPatient creates a patient account.
func RegisterPatient(svc patients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerPatientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dob, err := time.Parse("2006-01-02", payload.DateOfBirth)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "dateOfBirth must be YYYY-MM-DD"))
			return
		}

		patient, err := svc.Register(r.Context(), patients.RegisterInput{
			Name:             payload.Name,
			Email:            payload.Email,
			Password:         payload.Password,
			DateOfBirth:      dob,
			BloodGroup:       payload.BloodGroup,
			EmergencyContact: payload.EmergencyContact,
			Address:          payload.Address,
			RegisteredBy:     payload.RegisteredBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, patient)
	}
}

type registerHospitalRequest struct {
	HospitalName string `json:"hospitalName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
}

// RegisterHospital creates a hospital account.
func RegisterHospital(svc hospitals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerHospitalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hospital, err := svc.Register(r.Context(), hospitals.RegisterInput{
			HospitalName: payload.HospitalName,
			Email:        payload.Email,
			Password:     payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, hospital)
	}
}
