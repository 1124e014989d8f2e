package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v81"

	"github.com/frostlinehq/frostline/internal/config"
)

func testProvider() *StripeProvider {
	return &StripeProvider{
		cfg: &config.Config{
			AppEnv:         "development",
			PaymentTimeout: 30 * time.Second,
		},
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{19.99, 1999},
		// 19.995*100 is 1999.4999… in float64, below the tie, so it
		// rounds down. This exact value is the documented contract.
		{19.995, 1999},
		{20.00, 2000},
		{0.01, 1},
		{149.50, 14950},
		{1.005, 100},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.amount); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestCreatePaymentIntentForwardsMinorUnits(t *testing.T) {
	p := testProvider()

	var gotAmount int64
	var gotCurrency string
	calls := 0
	p.newIntent = func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		calls++
		gotAmount = *params.Amount
		gotCurrency = *params.Currency
		return &stripe.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
	}

	secret, err := p.CreatePaymentIntent(19.99, map[string]string{"lead_id": "abc"})
	if err != nil {
		t.Fatalf("CreatePaymentIntent failed: %v", err)
	}
	if secret != "pi_1_secret" {
		t.Fatalf("client secret = %q, want provider value verbatim", secret)
	}
	if calls != 1 {
		t.Fatalf("provider called %d times, want exactly 1", calls)
	}
	if gotAmount != 1999 {
		t.Fatalf("forwarded amount = %d cents, want 1999", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Fatalf("forwarded currency = %q, want relay constant usd", gotCurrency)
	}
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	p := testProvider()

	calls := 0
	p.newIntent = func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		calls++
		return nil, nil
	}

	for _, amount := range []float64{0, -5} {
		_, err := p.CreatePaymentIntent(amount, nil)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("CreatePaymentIntent(%v) error = %v, want ErrValidation", amount, err)
		}
	}
	if calls != 0 {
		t.Fatalf("provider called %d times on invalid input, want 0", calls)
	}
}

func TestCreatePaymentIntentRelaysProviderError(t *testing.T) {
	p := testProvider()

	calls := 0
	p.newIntent = func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		calls++
		return nil, errors.New("Your card was declined.")
	}

	_, err := p.CreatePaymentIntent(25, nil)
	if err == nil {
		t.Fatal("expected error from provider failure")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("provider failure must not look like a validation error")
	}
	// No retry: one failed call stays one call.
	if calls != 1 {
		t.Fatalf("provider called %d times, want exactly 1 (no retry)", calls)
	}
}

func TestCreateCheckoutSessionPolicy(t *testing.T) {
	p := testProvider()

	var got *stripe.CheckoutSessionParams
	p.newCheckout = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
	}

	url, err := p.CreateCheckoutSession("price_pro", "https://site/success", "https://site/cancel", map[string]string{"user_id": "u1"})
	if err != nil {
		t.Fatalf("CreateCheckoutSession failed: %v", err)
	}
	if url != "https://checkout.example/cs_1" {
		t.Fatalf("url = %q, want provider redirect URL", url)
	}

	if *got.Mode != string(stripe.CheckoutSessionModePayment) {
		t.Fatalf("mode = %q, want one-time payment mode", *got.Mode)
	}
	if len(got.LineItems) != 1 {
		t.Fatalf("line items = %d, want exactly 1", len(got.LineItems))
	}
	if *got.LineItems[0].Price != "price_pro" || *got.LineItems[0].Quantity != 1 {
		t.Fatalf("line item = %q x %d, want price_pro x 1", *got.LineItems[0].Price, *got.LineItems[0].Quantity)
	}
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	p := testProvider()

	calls := 0
	p.newCheckout = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		calls++
		return nil, nil
	}

	tests := []struct {
		name                          string
		priceID, successURL, cancelURL string
	}{
		{"missing priceId", "", "https://s", "https://c"},
		{"missing successUrl", "price_1", "", "https://c"},
		{"missing cancelUrl", "price_1", "https://s", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CreateCheckoutSession(tt.priceID, tt.successURL, tt.cancelURL, nil)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
		})
	}
	if calls != 0 {
		t.Fatalf("provider called %d times on invalid input, want 0", calls)
	}
}

func TestCreateCheckoutSessionRelaysProviderError(t *testing.T) {
	p := testProvider()

	calls := 0
	p.newCheckout = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		calls++
		return nil, errors.New("No such price: 'price_gone'")
	}

	_, err := p.CreateCheckoutSession("price_gone", "https://s", "https://c", nil)
	if err == nil {
		t.Fatal("expected provider error")
	}
	if calls != 1 {
		t.Fatalf("provider called %d times, want exactly 1 (no retry)", calls)
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	p := testProvider()
	p.cfg.StripeWebhookSecret = "whsec_test"

	headers := map[string][]string{
		"Stripe-Signature": {"t=1,v1=bogus"},
	}
	err := p.HandleWebhook([]byte(`{"type":"checkout.session.completed"}`), headers)
	if err == nil {
		t.Fatal("unsigned payload must be rejected")
	}
}
