package routes

import (
	"net/http"

	"github.com/frostlinehq/frostline/internal/app"
	"github.com/frostlinehq/frostline/internal/handler"
	"github.com/frostlinehq/frostline/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	content := handler.NewContentHandler(app.ContentService)
	lead := handler.NewLeadHandler(app.LeadService, app.Cfg.DispatchPhone)
	forum := handler.NewForumHandler(app.ForumService)
	newsletter := handler.NewNewsletterHandler(app.EmailService)
	pay := handler.NewPaymentHandler(app.PaymentService)
	entitlements := handler.NewEntitlementHandler(app.MembershipService, app.Cfg.EntitlementWebhookSecret)
	admin := handler.NewAdminHandler(app.LeadService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Session state for the storefront
	mux.HandleFunc("GET /api/session", handler.Session)

	// Content
	mux.HandleFunc("GET /api/blog", content.Posts)
	mux.HandleFunc("GET /api/blog/{slug}", content.Post)
	mux.HandleFunc("GET /api/services", content.Pages)
	mux.HandleFunc("GET /api/services/{slug}", content.Page)

	// Leads (rate limited: public form)
	leadLimiter := middleware.RateLimitLeads()
	mux.HandleFunc("POST /api/leads", leadLimiter(lead.CreateLead))
	mux.HandleFunc("POST /api/leads/{id}/photos", leadLimiter(lead.AttachPhoto))

	// Newsletter
	mux.HandleFunc("POST /api/newsletter/subscribe", newsletter.Subscribe)

	// Auth (rate limited)
	authLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", authLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", authLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("POST /api/auth/magic-link", authLimiter(auth.SendMagicLink))
	mux.HandleFunc("GET /auth/magic-link/{token}", auth.VerifyMagicLink)

	// OAuth
	mux.HandleFunc("GET /auth/google", authLimiter(auth.GoogleAuth))
	mux.HandleFunc("GET /auth/google/callback", authLimiter(auth.GoogleCallback))

	// ============================================================================
	// PAYMENT RELAY
	// ============================================================================

	mux.HandleFunc("POST /create-payment-intent", pay.CreatePaymentIntent)
	mux.HandleFunc("POST /create-checkout-session", pay.CreateCheckoutSession)
	mux.HandleFunc("POST /webhook", pay.Webhook)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Pro-only maintenance guides
	mux.HandleFunc("GET /api/pro/guides", middleware.RequirePro(content.Guides))
	mux.HandleFunc("GET /api/pro/guides/{slug}", middleware.RequirePro(content.Guide))

	// Forum (category access is enforced in the service; these wrappers
	// reject anonymous traffic before it reaches the database)
	mux.HandleFunc("GET /api/forum/threads", middleware.RequireAuth(forum.Threads))
	mux.HandleFunc("GET /api/forum/threads/{id}", middleware.RequireAuth(forum.Thread))
	mux.HandleFunc("POST /api/forum/threads", middleware.RequireAuth(forum.CreateThread))
	mux.HandleFunc("POST /api/forum/threads/{id}/replies", middleware.RequireAuth(forum.CreateReply))

	// Admin lead inbox
	mux.HandleFunc("GET /api/admin/leads", middleware.RequireAdmin(admin.Leads))
	mux.HandleFunc("GET /api/admin/leads/{id}", middleware.RequireAdmin(admin.Lead))
	mux.HandleFunc("PATCH /api/admin/leads/{id}", middleware.RequireAdmin(admin.UpdateLeadStatus))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Entitlement sync from the external auth collaborator
	mux.HandleFunc("POST /webhooks/entitlements", entitlements.Webhook)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (SecurityHeaders and CSRF read it)
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserRepository, app.MembershipService, app.Cfg),
	)
}
