package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/frostlinehq/frostline/internal/config"
	"github.com/frostlinehq/frostline/internal/model"
	"github.com/frostlinehq/frostline/internal/service"
)

// relayCurrency is fixed on the relay side; callers cannot select it.
const relayCurrency = string(stripe.CurrencyUSD)

// MinorUnits converts a major-unit amount (dollars) to the provider's
// integer minor units (cents). Rounding is to the nearest integer of the
// float64 product, ties away from zero: 19.99 yields 1999, and 19.995
// also yields 1999 because the product is 1999.4999..., under the tie.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type StripeProvider struct {
	cfg               *config.Config
	membershipService *service.MembershipService
	emailService      *service.EmailService

	// Seams over the stripe-go package funcs so tests can stub the
	// outbound call and count invocations.
	newIntent   func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	newCheckout func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewStripeProvider(cfg *config.Config, membershipService *service.MembershipService, emailService *service.EmailService) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey

	// The stock backend has no request deadline; give it one so a stuck
	// provider call fails instead of hanging the handler.
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: cfg.PaymentTimeout},
	}))

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv, "timeout", cfg.PaymentTimeout)

	return &StripeProvider{
		cfg:               cfg,
		membershipService: membershipService,
		emailService:      emailService,
		newIntent:         paymentintent.New,
		newCheckout:       checkoutsession.New,
	}
}

func (s *StripeProvider) Name() string {
	return model.ProviderStripe
}

func (s *StripeProvider) CreatePaymentIntent(amount float64, metadata map[string]string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive number of dollars", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(relayCurrency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := s.newIntent(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	slog.Info("stripe payment intent created", "intent_id", intent.ID, "amount_cents", MinorUnits(amount))
	return intent.ClientSecret, nil
}

func (s *StripeProvider) CreateCheckoutSession(priceID, successURL, cancelURL string, metadata map[string]string) (string, error) {
	if priceID == "" {
		return "", fmt.Errorf("%w: priceId is required", ErrValidation)
	}
	if successURL == "" {
		return "", fmt.Errorf("%w: successUrl is required", ErrValidation)
	}
	if cancelURL == "" {
		return "", fmt.Errorf("%w: cancelUrl is required", ErrValidation)
	}

	// One-time payment, one line item, quantity one. This is relay
	// policy, not a caller option.
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := s.newCheckout(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "session_id", sess.ID, "price_id", priceID)
	return sess.URL, nil
}

func (s *StripeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	signature := headers.Get("Stripe-Signature")

	// ConstructEventWithOptions ignores API version mismatch; Stripe's
	// versions are backwards compatible.
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutSessionCompleted(event.Data.Raw)
	case "payment_intent.succeeded":
		return s.handlePaymentIntentSucceeded(event.Data.Raw)
	case "payment_intent.payment_failed":
		return s.handlePaymentIntentFailed(event.Data.Raw)
	default:
		slog.Warn("stripe webhook unknown event type", "event_type", event.Type)
		return nil
	}
}

func (s *StripeProvider) handleCheckoutSessionCompleted(data json.RawMessage) error {
	var checkoutSession struct {
		ID              string            `json:"id"`
		CustomerID      string            `json:"customer"`
		PaymentIntent   string            `json:"payment_intent"`
		Metadata        map[string]string `json:"metadata"`
		CustomerDetails struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"customer_details"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	userID := checkoutSession.Metadata["user_id"]
	if userID == "" {
		slog.Warn("stripe checkout session has no user_id in metadata, skipping")
		return nil
	}

	err = s.membershipService.GrantPro(userID, checkoutSession.CustomerID, checkoutSession.PaymentIntent)
	if err != nil {
		return fmt.Errorf("failed to grant membership: %w", err)
	}

	if s.emailService != nil && checkoutSession.CustomerDetails.Email != "" {
		err = s.emailService.SendMembershipReceipt(checkoutSession.CustomerDetails.Email, checkoutSession.CustomerDetails.Name)
		if err != nil {
			slog.Warn("failed to send membership receipt", "error", err, "user_id", userID)
		}
	}

	slog.Info("stripe checkout completed, membership granted", "user_id", userID, "customer_id", checkoutSession.CustomerID)
	return nil
}

func (s *StripeProvider) handlePaymentIntentSucceeded(data json.RawMessage) error {
	var intent struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
	}

	err := json.Unmarshal(data, &intent)
	if err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	slog.Info("stripe payment succeeded", "intent_id", intent.ID, "amount_cents", intent.Amount)
	return nil
}

func (s *StripeProvider) handlePaymentIntentFailed(data json.RawMessage) error {
	var intent struct {
		ID        string `json:"id"`
		LastError struct {
			Message string `json:"message"`
		} `json:"last_payment_error"`
	}

	err := json.Unmarshal(data, &intent)
	if err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	slog.Warn("stripe payment failed", "intent_id", intent.ID, "reason", intent.LastError.Message)
	return nil
}
