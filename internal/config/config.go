package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName       string
	AppEnv        string
	AppURL        string // base URL the frontend uses to reach this backend
	Port          string
	SupportEmail  string
	DispatchPhone string // 24/7 emergency line, surfaced as the human fallback
	ContentPath   string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret            string
	JWTExpiry            time.Duration
	TokenMagicLinkExpiry time.Duration

	// Admin identities, matched case-insensitively against the signed-in
	// email. Injected here instead of being hardcoded anywhere.
	AdminEmails []string

	// Storefront origins allowed to call the API from a browser. The
	// session rides on cookies, so origins are matched exactly and the
	// list is never a wildcard.
	CORSAllowedOrigins []string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Email
	EmailFrom        string
	DispatchEmail    string // where new lead notifications go
	ResendAPIKey     string
	ResendAudienceID string

	// Payment (Stripe)
	PaymentProvider     string
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceIDPro    string // catalog price for the Pro membership checkout
	PaymentTimeout      time.Duration

	// Entitlement sync webhook from the auth collaborator
	EntitlementWebhookSecret string

	// Observability (optional)
	SentryDSN string

	// Storage for lead photo attachments (S3-compatible; optional)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:       envString("APP_NAME", "Frostline Heating & Air"),
		AppEnv:        envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:        envString("APP_URL", "http://localhost:8090"),
		Port:          envString("PORT", "8090"),
		SupportEmail:  envString("SUPPORT_EMAIL", "office@frostlineair.com"),
		DispatchPhone: envString("DISPATCH_PHONE", "(555) 212-4880"),
		ContentPath:   envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/frostline.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:            envRequired("JWT_SECRET"),
		JWTExpiry:            envDuration("JWT_EXPIRY", 168*time.Hour),               // 7 days
		TokenMagicLinkExpiry: envDuration("TOKEN_MAGIC_LINK_EXPIRY", 10*time.Minute), // 10 minutes

		AdminEmails: envList("ADMIN_EMAILS"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),

		// OAuth
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:        envString("EMAIL_FROM", "noreply@frostlineair.com"),
		DispatchEmail:    envString("DISPATCH_EMAIL", "dispatch@frostlineair.com"),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		ResendAudienceID: envString("RESEND_AUDIENCE_ID", ""),

		// Payment
		PaymentProvider:     envString("PAYMENT_PROVIDER", "stripe"),
		StripeSecretKey:     envString("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: envString("STRIPE_WEBHOOK_SECRET", ""),
		StripePriceIDPro:    envString("STRIPE_PRICE_ID_PRO", ""),
		PaymentTimeout:      envDuration("PAYMENT_TIMEOUT", 30*time.Second),

		EntitlementWebhookSecret: envString("ENTITLEMENT_WEBHOOK_SECRET", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (leave S3_BUCKET empty to disable photo attachments)
		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	if len(cfg.CORSAllowedOrigins) == 0 && cfg.IsDevelopment() {
		// Vite dev server default
		cfg.CORSAllowedOrigins = []string{"http://localhost:5173"}
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for
// production deployments. Development allows fallback modes (email log
// mode, unsigned entitlement sync) for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.StripeSecretKey == "" {
		slog.Error("production deployment requires STRIPE_SECRET_KEY")
		os.Exit(1)
	}
	if cfg.StripeWebhookSecret == "" {
		slog.Error("production deployment requires STRIPE_WEBHOOK_SECRET")
		os.Exit(1)
	}
	if cfg.EntitlementWebhookSecret == "" {
		slog.Error("production deployment requires ENTITLEMENT_WEBHOOK_SECRET")
		os.Exit(1)
	}
}

// IsAdminEmail reports whether email is on the configured allow-list.
// Comparison is case-insensitive.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets and credentials are excluded; safe to put in request context.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:       c.AppName,
		AppEnv:        c.AppEnv,
		AppURL:        c.AppURL,
		Port:          c.Port,
		SupportEmail:  c.SupportEmail,
		DispatchPhone: c.DispatchPhone,

		CORSAllowedOrigins: c.CORSAllowedOrigins,

		EmailFrom: c.EmailFrom,

		GoogleClientID: c.GoogleClientID,

		S3Endpoint: c.S3Endpoint,
	}
}
