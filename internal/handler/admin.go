package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
)

// AdminHandler is the dispatch lead inbox. Routes wrap every endpoint
// in the admin gate.
type AdminHandler struct {
	leadService *service.LeadService
}

func NewAdminHandler(leadService *service.LeadService) *AdminHandler {
	return &AdminHandler{leadService: leadService}
}

func (h *AdminHandler) Leads(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	leads, err := h.leadService.Leads(status, limit)
	if err != nil {
		slog.Error("failed to list leads", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *AdminHandler) Lead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	lead, err := h.leadService.Lead(id)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		slog.Error("failed to load lead", "error", err, "lead_id", id)
		writeError(w, http.StatusInternalServerError, "failed to load lead")
		return
	}

	photoURLs, err := h.leadService.PhotoURLs(id)
	if err != nil {
		slog.Error("failed to load photo URLs", "error", err, "lead_id", id)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lead":   lead,
		"photos": photoURLs,
	})
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.leadService.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
