package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frostlinehq/frostline/internal/ctxkeys"
)

func TestSessionIncludesCSRFToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/session", nil)
	req = req.WithContext(ctxkeys.WithCSRFToken(req.Context(), "tok-abc123"))
	rec := httptest.NewRecorder()

	Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		State     string `json:"state"`
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.State != "sign_in_required" {
		t.Errorf("state = %q, want sign_in_required", resp.State)
	}
	if resp.CSRFToken != "tok-abc123" {
		t.Errorf("csrfToken = %q, want the request token", resp.CSRFToken)
	}
}
