package handler

import (
	"net/http"

	"github.com/frostlinehq/frostline/internal/ctxkeys"
	"github.com/frostlinehq/frostline/internal/gate"
)

type sessionResponse struct {
	State     string       `json:"state"`
	CSRFToken string       `json:"csrfToken,omitempty"`
	Viewer    *viewerBlock `json:"viewer,omitempty"`
}

type viewerBlock struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Entitled bool   `json:"entitled"`
	Admin    bool   `json:"admin"`
}

// Session exposes the gate decision for the current request so the
// storefront can branch without re-deriving entitlement rules. The
// response also carries the CSRF token the client echoes on writes.
func Session(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.Viewer(r.Context())
	resp := sessionResponse{
		State:     gate.Decide(viewer).String(),
		CSRFToken: ctxkeys.CSRFToken(r.Context()),
	}

	if user := ctxkeys.User(r.Context()); user != nil && viewer != nil {
		resp.Viewer = &viewerBlock{
			Email:    user.Email,
			Name:     user.Name,
			Entitled: viewer.Entitled(),
			Admin:    viewer.Role == gate.RoleAdmin,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
