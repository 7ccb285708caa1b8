package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/inventory"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

type stockChangeRequest struct {
	HospitalID   string `json:"hospitalId" validate:"required"`
	HospitalName string `json:"hospitalName"`
	BloodType    string `json:"bloodType" validate:"required"`
	Units        int    `json:"units" validate:"required,gt=0"`
}

func (r stockChangeRequest) toInput() inventory.StockChangeInput {
	return inventory.StockChangeInput{
		HospitalID:   r.HospitalID,
		HospitalName: r.HospitalName,
		BloodType:    r.BloodType,
		Units:        r.Units,
	}
}

// BloodAdd increments a hospital's stock for a blood type.
func BloodAdd(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockChangeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddUnits(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// BloodRemove decrements a hospital's stock for a blood type.
func BloodRemove(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockChangeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RemoveUnits(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type stockSetRequest struct {
	HospitalID     string `json:"hospitalId" validate:"required"`
	HospitalName   string `json:"hospitalName"`
	BloodType      string `json:"bloodType" validate:"required"`
	AvailableUnits int    `json:"availableUnits" validate:"gte=0"`
}

// BloodUpdate sets a hospital's stock for a blood type to an absolute count.
func BloodUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetUnits(r.Context(), inventory.SetUnitsInput{
			HospitalID:     payload.HospitalID,
			HospitalName:   payload.HospitalName,
			BloodType:      payload.BloodType,
			AvailableUnits: payload.AvailableUnits,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// BloodList returns all stock records for a hospital.
func BloodList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hospitalID := chi.URLParam(r, "hospitalId")
		records, err := svc.List(r.Context(), hospitalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
