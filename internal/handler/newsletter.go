package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frostlinehq/frostline/internal/service"
	"github.com/frostlinehq/frostline/internal/validation"
)

type newsletterHandler struct {
	emailService *service.EmailService
}

func NewNewsletterHandler(emailService *service.EmailService) *newsletterHandler {
	return &newsletterHandler{
		emailService: emailService,
	}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *newsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		writeError(w, http.StatusBadRequest, "please provide a valid email address")
		return
	}

	if err := h.emailService.SubscribeNewsletter(email); err != nil {
		// Service layer already logs errors - just handle error case
		// Return success to prevent email enumeration
		slog.Warn("newsletter subscription error", "error", err, "email", email)
	}

	// Always report success (prevents email enumeration)
	writeJSON(w, http.StatusOK, map[string]bool{"subscribed": true})
}
