package payment

import (
	"errors"
	"net/http"
)

// ErrValidation marks a request rejected before any outbound provider
// call was made.
var ErrValidation = errors.New("invalid payment request")

// Provider defines the interface the relay forwards to. Each call is a
// fresh, independent provider request: no idempotency tracking, no
// retries, no state held between calls.
type Provider interface {
	// CreatePaymentIntent forwards a direct charge and returns the
	// provider's client secret verbatim. amount is in major units
	// (dollars); conversion to the provider's minor units happens inside
	// the relay, so callers must not pre-convert.
	CreatePaymentIntent(amount float64, metadata map[string]string) (clientSecret string, err error)

	// CreateCheckoutSession starts a hosted checkout for a catalog price
	// and returns the provider-issued redirect URL.
	CreateCheckoutSession(priceID, successURL, cancelURL string, metadata map[string]string) (url string, err error)

	// HandleWebhook verifies and processes a provider callback.
	HandleWebhook(payload []byte, headers http.Header) error

	// Name returns the provider name (e.g., "stripe")
	Name() string
}
