package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

// PatientProfile returns the patient record for the path id.
func PatientProfile(svc patients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "id")
		patient, err := svc.GetByPatientID(r.Context(), patientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, patient)
	}
}
