package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frostlinehq/frostline/internal/service/payment"
)

// PaymentHandler is the HTTP face of the payment relay. It decodes the
// storefront's JSON, hands it to the provider, and relays the result or
// the provider's error message. It holds no payment state of its own.
type PaymentHandler struct {
	provider payment.Provider
}

func NewPaymentHandler(provider payment.Provider) *PaymentHandler {
	return &PaymentHandler{provider: provider}
}

type createPaymentIntentRequest struct {
	Amount   float64           `json:"amount"`
	Metadata map[string]string `json:"metadata"`
}

// CreatePaymentIntent forwards a direct charge. The amount arrives in
// dollars; the relay converts to cents.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createPaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	clientSecret, err := h.provider.CreatePaymentIntent(req.Amount, req.Metadata)
	if err != nil {
		if errors.Is(err, payment.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create payment intent", "error", err, "provider", h.provider.Name())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

type createCheckoutSessionRequest struct {
	PriceID    string            `json:"priceId"`
	SuccessURL string            `json:"successUrl"`
	CancelURL  string            `json:"cancelUrl"`
	Metadata   map[string]string `json:"metadata"`
}

// CreateCheckoutSession starts a hosted checkout and returns the
// provider's redirect URL for the storefront to follow.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req createCheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	url, err := h.provider.CreateCheckoutSession(req.PriceID, req.SuccessURL, req.CancelURL, req.Metadata)
	if err != nil {
		if errors.Is(err, payment.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create checkout session", "error", err, "provider", h.provider.Name())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook receives provider callbacks. The raw body is read before any
// parsing so signature verification sees the exact payload bytes.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	if err := h.provider.HandleWebhook(payload, r.Header); err != nil {
		slog.Error("failed to handle webhook", "error", err, "provider", h.provider.Name())
		writeError(w, http.StatusBadRequest, "failed to process webhook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
