// Package payments wraps the Stripe API behind the two operations the
// billing core needs: creating a hosted checkout session and reading back a
// payment intent's settlement status.
package payments

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"billing/internal/apperrors"
)

// Gateway-reported payment-intent statuses the billing core interprets.
// "succeeded" is the only success signal; "canceled" is a definitive,
// terminal failure. Everything else means "not yet settled".
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusCanceled  = "canceled"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CheckoutSession identifies a gateway-hosted, single-use payment flow.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PaymentIntent is the gateway's view of one payment attempt.
type PaymentIntent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Config holds the Stripe credentials and checkout redirect targets.
type Config struct {
	SecretKey   string
	SuccessURL  string
	CancelURL   string
	ProductName string
	// Timeout bounds every gateway call. Zero falls back to a minute.
	Timeout time.Duration
}

// StripeGateway talks to Stripe. It never retries: a checkout session is
// single-use, so retrying at this layer could double-charge.
type StripeGateway struct {
	api *client.API
	cfg Config
}

// NewStripeGateway creates a Stripe client with a bounded HTTP timeout.
func NewStripeGateway(cfg Config) *StripeGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &StripeGateway{
		api: api,
		cfg: cfg,
	}
}

// MinorUnits converts a major-unit amount to the gateway's integer
// minor-unit representation (truncating).
func MinorUnits(amount float64) int64 {
	return int64(amount * 100)
}

// CreateCheckoutSession creates a hosted checkout session for a single line
// item priced at the given amount with quantity 1.
func (g *StripeGateway) CreateCheckoutSession(amount float64, currency string) (*CheckoutSession, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "Amount must be greater than zero")
	}
	if !currencyPattern.MatchString(currency) {
		return nil, apperrors.NewValidationError("currency", "Currency must be a 3-letter uppercase ISO code")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.cfg.SuccessURL),
		CancelURL:          stripe.String(g.cfg.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(currency)),
					UnitAmount: stripe.Int64(MinorUnits(amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(g.cfg.ProductName),
					},
				},
			},
		},
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, &apperrors.GatewayError{Op: "create checkout session", Err: err}
	}

	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// RetrievePaymentIntent fetches the current status of a payment intent.
func (g *StripeGateway) RetrievePaymentIntent(paymentIntentID string) (*PaymentIntent, error) {
	intent, err := g.api.PaymentIntents.Get(paymentIntentID, nil)
	if err != nil {
		return nil, &apperrors.GatewayError{Op: "retrieve payment intent", Err: err}
	}

	return &PaymentIntent{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Currency: string(intent.Currency),
		Status:   string(intent.Status),
	}, nil
}
