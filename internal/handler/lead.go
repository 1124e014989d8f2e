package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
)

const maxPhotoSize = 10 << 20 // 10 MB

type LeadHandler struct {
	leadService   *service.LeadService
	dispatchPhone string
}

func NewLeadHandler(leadService *service.LeadService, dispatchPhone string) *LeadHandler {
	return &LeadHandler{
		leadService:   leadService,
		dispatchPhone: dispatchPhone,
	}
}

type createLeadRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Emergency bool   `json:"emergency"`
}

type createLeadResponse struct {
	ID            string `json:"id"`
	DispatchPhone string `json:"dispatchPhone,omitempty"`
}

// CreateLead records a service request from the storefront. Emergency
// requests always get the dispatch phone back, even on failure, so the
// customer has a number to call when the form path breaks.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.leadService.CreateLead(req.Name, req.Phone, req.Email, req.Service, req.Message, req.Emergency)
	if err != nil {
		resp := map[string]string{"error": err.Error()}
		if req.Emergency {
			resp["dispatchPhone"] = h.dispatchPhone
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	resp := createLeadResponse{ID: lead.ID}
	if lead.Emergency {
		resp.DispatchPhone = h.dispatchPhone
	}
	writeJSON(w, http.StatusCreated, resp)
}

// AttachPhoto accepts one multipart photo upload for an existing lead.
func (h *LeadHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	leadID := r.PathValue("id")

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("failed to close uploaded file", "error", closeErr)
		}
	}()

	if header.Size > maxPhotoSize {
		writeError(w, http.StatusRequestEntityTooLarge, "photo must be 10MB or smaller")
		return
	}

	switch header.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/webp", "image/heic":
	default:
		writeError(w, http.StatusBadRequest, "photo must be a JPEG, PNG, WebP, or HEIC image")
		return
	}

	photo, err := h.leadService.AttachPhoto(leadID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotosDisabled):
			writeError(w, http.StatusNotImplemented, err.Error())
		case errors.Is(err, repository.ErrLeadNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			slog.Error("failed to attach photo", "error", err, "lead_id", leadID)
			writeError(w, http.StatusInternalServerError, "failed to save photo")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": photo.ID})
}
