package payment

import (
	"fmt"
	"log/slog"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/service"
)

// NewProvider creates a payment provider based on configuration
func NewProvider(cfg *config.Config, membershipService *service.MembershipService, emailService *service.EmailService) (Provider, error) {
	provider := cfg.PaymentProvider

	slog.Info("initializing payment provider", "provider", provider)

	switch provider {
	case model.ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when using Stripe provider")
		}
		if cfg.StripeWebhookSecret == "" {
			return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when using Stripe provider")
		}
		return NewStripeProvider(cfg, membershipService, emailService), nil

	default:
		return nil, fmt.Errorf("unknown payment provider: %s (supported: stripe)", provider)
	}
}
