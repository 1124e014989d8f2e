package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/ctxkeys"
	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/service"
)

type authHandler struct {
	authService       *service.AuthService
	cfg               *config.Config
	googleOAuthConfig *oauth2.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		cfg:         cfg,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "failed to issue session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

func (h *authHandler) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.authService.SendMagicLink(req.Email); err != nil {
		// Always report success to prevent email enumeration
		slog.Warn("magic link request failed", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// VerifyMagicLink is a browser endpoint: the user lands here from the
// email link, gets a session cookie, and is redirected to the site.
func (h *authHandler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyMagicLink(token)
	if err != nil {
		slog.Warn("magic link verification failed", "error", err)
		http.Redirect(w, r, "/signin?error=invalid_link", http.StatusSeeOther)
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/signin?error=session", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GoogleAuth redirects the user to the Google OAuth consent screen
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	// Generate secure state token for CSRF protection
	state := generateOAuthState()

	cfg := ctxkeys.Config(r.Context())
	isProduction := cfg != nil && cfg.IsProduction()

	// Store state in secure cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction, // Secure flag based on APP_ENV (safer than r.TLS behind load balancers)
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	url := h.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	// Validate state parameter for CSRF protection
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie("oauth_state")
	if err != nil || cookie.Value != state || state == "" {
		slog.Warn("google oauth state validation failed", "error", err)
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("google oauth callback missing code")
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}

	token, err := h.googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("google oauth token exchange failed", "error", err)
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}

	client := h.googleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		slog.Error("failed to get google user info", "error", err)
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var userInfo struct {
		Email string `json:"email"`
	}
	err = json.NewDecoder(resp.Body).Decode(&userInfo)
	if err != nil {
		slog.Error("failed to decode google user info", "error", err)
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}

	user, err := h.authService.AuthenticateOAuth(userInfo.Email, "google")
	if err != nil {
		slog.Error("oauth authentication failed", "error", err, "email", userInfo.Email)
		http.Redirect(w, r, "/signin?error=oauth", http.StatusSeeOther)
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/signin?error=session", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in with google oauth", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *authHandler) setSessionCookie(w http.ResponseWriter, user *model.User) error {
	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		return err
	}
	h.authService.SetJWTCookie(w, jwtToken, time.Now().Add(h.cfg.JWTExpiry))
	return nil
}

// generateOAuthState creates cryptographically secure random state token for OAuth CSRF protection
func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
