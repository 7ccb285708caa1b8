package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/visits"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

type addVisitRequest struct {
	PatientID    string `json:"patientId" validate:"required"`
	HospitalID   string `json:"hospitalId" validate:"required"`
	HospitalName string `json:"hospitalName"`
	VisitDate    string `json:"visitDate"`
	Diagnosis    string `json:"diagnosis" validate:"required"`
	Prescription string `json:"prescription" validate:"required"`
	LabResults   string `json:"labResults"`
	DoctorName   string `json:"doctorName" validate:"required"`
	Notes        string `json:"notes"`
}

// AddVisit records a hospital-authored visit for a patient.
func AddVisit(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addVisitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var visitDate time.Time
		if payload.VisitDate != "" {
			parsed, err := time.Parse(time.RFC3339, payload.VisitDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "visitDate must be RFC3339"))
				return
			}
			visitDate = parsed
		}

		visit, err := svc.AddVisit(r.Context(), visits.AddVisitInput{
			PatientID:    payload.PatientID,
			HospitalID:   payload.HospitalID,
			HospitalName: payload.HospitalName,
			VisitDate:    visitDate,
			Diagnosis:    payload.Diagnosis,
			Prescription: payload.Prescription,
			LabResults:   payload.LabResults,
			DoctorName:   payload.DoctorName,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, visit)
	}
}

// PatientVisits lists a patient's visits newest first.
func PatientVisits(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientId")
		list, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PatientSearch returns a patient profile together with the visit history.
func PatientSearch(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientId")
		history, err := svc.Search(r.Context(), patientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
