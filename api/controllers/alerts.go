package controllers

import (
	"net/http"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/alerts"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

// CriticalAlerts lists active critical stock alerts, newest first.
func CriticalAlerts(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListCritical(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type acknowledgeRequest struct {
	AlertID      string `json:"alertId" validate:"required"`
	HospitalID   string `json:"hospitalId" validate:"required"`
	HospitalName string `json:"hospitalName"`
	Response     string `json:"response"`
}

func (r acknowledgeRequest) toInput() alerts.AcknowledgeInput {
	return alerts.AcknowledgeInput{
		AlertID:      r.AlertID,
		HospitalID:   r.HospitalID,
		HospitalName: r.HospitalName,
		Response:     r.Response,
	}
}

// AcknowledgeCritical appends a hospital response to a critical alert.
func AcknowledgeCritical(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload acknowledgeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.AcknowledgeCritical(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alert)
	}
}

type raiseEmergencyRequest struct {
	HospitalID   string `json:"hospitalId" validate:"required"`
	HospitalName string `json:"hospitalName" validate:"required"`
	Message      string `json:"message" validate:"required"`
	Type         string `json:"type"`
	Priority     string `json:"priority"`
}

// RaiseEmergency broadcasts a hospital emergency alert.
func RaiseEmergency(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload raiseEmergencyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.RaiseEmergency(r.Context(), alerts.RaiseEmergencyInput{
			HospitalID:   payload.HospitalID,
			HospitalName: payload.HospitalName,
			Message:      payload.Message,
			Type:         payload.Type,
			Priority:     payload.Priority,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, alert)
	}
}

// EmergencyAlerts lists active emergency alerts, newest first.
func EmergencyAlerts(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListEmergency(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AcknowledgeEmergency appends a hospital response to an emergency alert.
func AcknowledgeEmergency(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload acknowledgeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		alert, err := svc.AcknowledgeEmergency(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, alert)
	}
}
