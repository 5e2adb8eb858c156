package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/api/presenter"
	"github.com/sohelranaweb/hotelier-server/internal/auth"
	"github.com/sohelranaweb/hotelier-server/internal/core"
)

type paymentIntentPayload struct {
	// Price in dollars; converted to cents for the payment provider.
	Price float64 `json:"price"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// handleCreatePaymentIntent asks the payment provider for a card intent and
// hands the client secret back to the browser.
func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request, _ *auth.Identity) {
	logger := log.Ctx(r.Context())

	var payload paymentIntentPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode payment intent payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	amountCents := int64(payload.Price * 100)
	if amountCents <= 0 {
		presenter.Error(w, r, "price must be positive", http.StatusBadRequest)
		return
	}

	intent, err := s.payments.CreateIntent(r.Context(), amountCents, "usd")
	if err != nil {
		logger.Error().Err(err).Msg("payment intent creation failed")
		presenter.Error(w, r, "payment intent creation failed", http.StatusBadGateway)
		return
	}

	logger.Info().Int64("amount_cents", amountCents).Msg("payment intent created")
	presenter.JSON(w, r, paymentIntentResponse{ClientSecret: intent.ClientSecret}, http.StatusOK)
}

// handleCreatePayment records a completed charge. The record is always filed
// under the verified caller's email, no matter what the body claims.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request, id *auth.Identity) {
	logger := log.Ctx(r.Context())

	var payment core.Payment
	if err := DecodePayload(r, &payment, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode payment payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	payment.ID = ""
	payment.Email = id.Email

	result, err := s.store.CreatePayment(r.Context(), payment)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store payment")
		presenter.Err(w, r, err, "failed to store payment")
		return
	}

	logger.Info().Str("payment_id", result.InsertedID).Msg("payment recorded")
	presenter.JSON(w, r, result, http.StatusCreated)
}
