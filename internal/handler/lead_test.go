package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
)

type fakeLeadRepo struct {
	leads  []*model.Lead
	photos []*model.LeadPhoto
}

func (f *fakeLeadRepo) Create(lead *model.Lead) error {
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeLeadRepo) ByID(id string) (*model.Lead, error) {
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repository.ErrLeadNotFound
}

func (f *fakeLeadRepo) List(status string, limit int) ([]*model.Lead, error) {
	return f.leads, nil
}

func (f *fakeLeadRepo) UpdateStatus(id, status string) error {
	lead, err := f.ByID(id)
	if err != nil {
		return err
	}
	lead.Status = status
	return nil
}

func (f *fakeLeadRepo) AddPhoto(photo *model.LeadPhoto) error {
	f.photos = append(f.photos, photo)
	return nil
}

func (f *fakeLeadRepo) Photos(leadID string) ([]*model.LeadPhoto, error) {
	return f.photos, nil
}

func newTestLeadHandler(repo *fakeLeadRepo) *LeadHandler {
	emailService := service.NewEmailService("", "noreply@frostline.example", "dispatch@frostline.example", "", "http://localhost:8090", "Frostline", true)
	leadService := service.NewLeadService(repo, emailService, nil)
	return NewLeadHandler(leadService, "+1-555-0100")
}

func TestCreateLead(t *testing.T) {
	repo := &fakeLeadRepo{}
	h := newTestLeadHandler(repo)

	body := `{"name": "Pat Winters", "phone": "555-867-5309", "email": "pat@example.com", "service": "furnace-repair", "message": "No heat since last night"}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateLead(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp createLeadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected lead id in response")
	}
	if resp.DispatchPhone != "" {
		t.Errorf("non-emergency lead should not include dispatch phone, got %q", resp.DispatchPhone)
	}

	if len(repo.leads) != 1 {
		t.Fatalf("expected 1 stored lead, got %d", len(repo.leads))
	}
	if repo.leads[0].Status != model.LeadStatusNew {
		t.Errorf("expected new status, got %q", repo.leads[0].Status)
	}
}

func TestCreateLeadEmergencyIncludesDispatchPhone(t *testing.T) {
	repo := &fakeLeadRepo{}
	h := newTestLeadHandler(repo)

	body := `{"name": "Pat Winters", "phone": "555-867-5309", "emergency": true}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateLead(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp createLeadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.DispatchPhone != "+1-555-0100" {
		t.Errorf("expected dispatch phone in emergency response, got %q", resp.DispatchPhone)
	}
}

func TestCreateLeadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"phone": "555-867-5309"}`},
		{"missing phone", `{"name": "Pat Winters"}`},
		{"bad phone", `{"name": "Pat Winters", "phone": "12"}`},
		{"bad email", `{"name": "Pat Winters", "phone": "555-867-5309", "email": "not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLeadRepo{}
			h := newTestLeadHandler(repo)

			req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateLead(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if len(repo.leads) != 0 {
				t.Errorf("expected no stored leads, got %d", len(repo.leads))
			}
		})
	}
}

func TestCreateLeadEmergencyErrorStillIncludesDispatchPhone(t *testing.T) {
	repo := &fakeLeadRepo{}
	h := newTestLeadHandler(repo)

	// Invalid phone, but emergency: the customer still needs a number
	body := `{"name": "Pat Winters", "phone": "12", "emergency": true}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateLead(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["dispatchPhone"] != "+1-555-0100" {
		t.Errorf("expected dispatch phone in emergency error response, got %q", resp["dispatchPhone"])
	}
}
