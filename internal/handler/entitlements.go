package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/frostlinehq/frostline/internal/service"
)

// EntitlementHandler ingests entitlement updates pushed by the external
// auth collaborator. Both source flags are persisted as received; the
// gate derives access from their OR at request time.
type EntitlementHandler struct {
	membershipService *service.MembershipService
	webhookSecret     string
}

func NewEntitlementHandler(membershipService *service.MembershipService, webhookSecret string) *EntitlementHandler {
	return &EntitlementHandler{
		membershipService: membershipService,
		webhookSecret:     webhookSecret,
	}
}

type entitlementEvent struct {
	UserID       string `json:"userId"`
	HasProAccess bool   `json:"hasProAccess"`
	HasPro       bool   `json:"hasPro"`
}

func (h *EntitlementHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read entitlement payload", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	if err := h.verify(payload, r.Header); err != nil {
		slog.Warn("entitlement webhook rejected", "error", err)
		writeError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event entitlementEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse webhook")
		return
	}
	if event.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.membershipService.SyncEntitlements(event.UserID, event.HasProAccess, event.HasPro); err != nil {
		slog.Error("failed to sync entitlements", "error", err, "user_id", event.UserID)
		writeError(w, http.StatusInternalServerError, "failed to sync entitlements")
		return
	}

	slog.Info("entitlements synced", "user_id", event.UserID, "has_pro_access", event.HasProAccess, "has_pro", event.HasPro)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *EntitlementHandler) verify(payload []byte, headers http.Header) error {
	if h.webhookSecret == "" {
		return fmt.Errorf("no webhook secret configured")
	}

	wh, err := standardwebhooks.NewWebhookRaw([]byte(h.webhookSecret))
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	httpHeaders := http.Header{}
	httpHeaders.Set("webhook-id", headers.Get("webhook-id"))
	httpHeaders.Set("webhook-timestamp", headers.Get("webhook-timestamp"))
	httpHeaders.Set("webhook-signature", headers.Get("webhook-signature"))

	if err := wh.Verify(payload, httpHeaders); err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}

	return nil
}
