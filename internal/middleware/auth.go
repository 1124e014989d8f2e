package middleware

import (
	"errors"
	"net/http"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/ctxkeys"
	"github.com/frostlinehq/frostline/internal/gate"
	"github.com/frostlinehq/frostline/internal/repository"
	"github.com/frostlinehq/frostline/internal/service"
)

// AuthMiddleware checks for a JWT cookie and, when valid, adds the user
// and their gate viewer to the request context. Requests without a
// session continue with no viewer; access decisions happen downstream.
func AuthMiddleware(authService *service.AuthService, userRepo repository.UserRepository, membershipService *service.MembershipService, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				// Invalid token, clear cookie and continue
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.ByID(userID)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = nil

			membership, err := membershipService.Membership(userID)
			if err != nil {
				// Membership row missing - something wrong, clear cookie
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			role := gate.RoleUser
			if cfg.IsAdminEmail(user.Email) {
				role = gate.RoleAdmin
			}

			viewer := &gate.Viewer{
				Authenticated: true,
				HasProAccess:  membership.HasProAccess,
				HasPro:        membership.HasPro,
				Role:          role,
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithViewer(ctx, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries an authenticated viewer.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Check(ctxkeys.Viewer(r.Context()), gate.RequireAuth()); err != nil {
			writeGateError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequirePro ensures the viewer is signed in with an entitled membership.
func RequirePro(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Check(ctxkeys.Viewer(r.Context()), gate.RequireAuth(), gate.RequireEntitlement()); err != nil {
			writeGateError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin ensures the viewer's email is on the admin allow-list.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Check(ctxkeys.Viewer(r.Context()), gate.RequireAuth(), gate.RequireRole(gate.RoleAdmin)); err != nil {
			writeGateError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeGateError(w http.ResponseWriter, err error) {
	status := http.StatusForbidden
	if errors.Is(err, gate.ErrUnauthorized) {
		status = http.StatusUnauthorized
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + err.Error() + `"}`))
}
