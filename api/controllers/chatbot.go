package controllers

import (
	"net/http"

	"github.com/sanarehealth/medledger-backend/api/responses"
	"github.com/sanarehealth/medledger-backend/api/validators"
	"github.com/sanarehealth/medledger-backend/internal/chatbot"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

type chatbotRequest struct {
	Message string `json:"message" validate:"required"`
}

// Chatbot answers a free-text health question.
func Chatbot(svc chatbot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chatbotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		answer, err := svc.Ask(r.Context(), payload.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, answer)
	}
}
