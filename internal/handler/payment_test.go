package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frostlinehq/frostline/internal/service/payment"
)

type fakeProvider struct {
	intentCalls   int
	checkoutCalls int
	err           error
	clientSecret  string
	checkoutURL   string
}

func (f *fakeProvider) CreatePaymentIntent(amount float64, metadata map[string]string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive number of dollars", payment.ErrValidation)
	}
	f.intentCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.clientSecret, nil
}

func (f *fakeProvider) CreateCheckoutSession(priceID, successURL, cancelURL string, metadata map[string]string) (string, error) {
	if priceID == "" || successURL == "" || cancelURL == "" {
		return "", fmt.Errorf("%w: missing required field", payment.ErrValidation)
	}
	f.checkoutCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.checkoutURL, nil
}

func (f *fakeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	return f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func TestCreatePaymentIntent(t *testing.T) {
	provider := &fakeProvider{clientSecret: "pi_123_secret_456"}
	h := NewPaymentHandler(provider)

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount": 19.99, "metadata": {"order": "42"}}`))
	rec := httptest.NewRecorder()
	h.CreatePaymentIntent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["clientSecret"] != "pi_123_secret_456" {
		t.Errorf("expected client secret to be relayed, got %q", resp["clientSecret"])
	}
	if provider.intentCalls != 1 {
		t.Errorf("expected exactly one provider call, got %d", provider.intentCalls)
	}
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount": 0}`},
		{"negative amount", `{"amount": -5.00}`},
		{"missing amount", `{}`},
		{"malformed json", `{"amount":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			h := NewPaymentHandler(provider)

			req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreatePaymentIntent(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if provider.intentCalls != 0 {
				t.Errorf("expected no provider calls on invalid input, got %d", provider.intentCalls)
			}
		})
	}
}

func TestCreatePaymentIntentProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("card declined by provider")}
	h := NewPaymentHandler(provider)

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount": 19.99}`))
	rec := httptest.NewRecorder()
	h.CreatePaymentIntent(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp["error"], "card declined by provider") {
		t.Errorf("expected provider message to be relayed, got %q", resp["error"])
	}
	if provider.intentCalls != 1 {
		t.Errorf("expected exactly one provider call, no retries, got %d", provider.intentCalls)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	provider := &fakeProvider{checkoutURL: "https://checkout.stripe.com/c/pay/cs_123"}
	h := NewPaymentHandler(provider)

	body := `{"priceId": "price_123", "successUrl": "https://frostline.example/thanks", "cancelUrl": "https://frostline.example/pro"}`
	req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateCheckoutSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["url"] != "https://checkout.stripe.com/c/pay/cs_123" {
		t.Errorf("expected checkout URL to be relayed, got %q", resp["url"])
	}
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing priceId", `{"successUrl": "https://a", "cancelUrl": "https://b"}`},
		{"missing successUrl", `{"priceId": "price_123", "cancelUrl": "https://b"}`},
		{"missing cancelUrl", `{"priceId": "price_123", "successUrl": "https://a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			h := NewPaymentHandler(provider)

			req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateCheckoutSession(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if provider.checkoutCalls != 0 {
				t.Errorf("expected no provider calls on invalid input, got %d", provider.checkoutCalls)
			}
		})
	}
}

func TestWebhookFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("signature mismatch")}
	h := NewPaymentHandler(provider)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookSuccess(t *testing.T) {
	provider := &fakeProvider{}
	h := NewPaymentHandler(provider)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["received"] {
		t.Errorf("expected acknowledgment body, got %v", resp)
	}
}
