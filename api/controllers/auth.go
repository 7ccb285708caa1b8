package controllers

import (
	"net/http"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/authn"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

type patientLoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	PatientID string `json:"patientId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

// LoginPatient authenticates a patient and returns a token with the profile.
func LoginPatient(svc authn.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload patientLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.LoginPatient(r.Context(), authn.PatientLoginInput{
			Email:     payload.Email,
			PatientID: payload.PatientID,
			Name:      payload.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"token":   session.Token,
			"patient": session.Patient,
		})
	}
}

type hospitalLoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	HospitalID   string `json:"hospitalId" validate:"required"`
	HospitalName string `json:"hospitalName" validate:"required"`
}

// LoginHospital authenticates a hospital and returns a token with the profile.
func LoginHospital(svc authn.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload hospitalLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.LoginHospital(r.Context(), authn.HospitalLoginInput{
			Email:        payload.Email,
			HospitalID:   payload.HospitalID,
			HospitalName: payload.HospitalName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"token":    session.Token,
			"hospital": session.Hospital,
		})
	}
}
