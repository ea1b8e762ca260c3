package payments_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billing/internal/apperrors"
	"billing/pkg/payments"
)

func testGateway() *payments.StripeGateway {
	return payments.NewStripeGateway(payments.Config{
		SecretKey:   "sk_test_dummy",
		SuccessURL:  "http://localhost:3000/success",
		CancelURL:   "http://localhost:3000/cancel",
		ProductName: "POS Order",
		Timeout:     time.Second,
	})
}

func TestCreateCheckoutSession_RejectsNonPositiveAmount(t *testing.T) {
	gateway := testGateway()

	for _, amount := range []float64{0, -10.5} {
		_, err := gateway.CreateCheckoutSession(amount, "INR")

		var validationErr *apperrors.ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Contains(t, validationErr.Fields, "amount")
	}
}

func TestCreateCheckoutSession_RejectsBadCurrency(t *testing.T) {
	gateway := testGateway()

	for _, currency := range []string{"", "inr", "RUPEES", "IN", "IN1"} {
		_, err := gateway.CreateCheckoutSession(100.0, currency)

		var validationErr *apperrors.ValidationError
		assert.True(t, errors.As(err, &validationErr), "currency %q should be rejected", currency)
		assert.Contains(t, validationErr.Fields, "currency")
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(52500), payments.MinorUnits(525.0))
	assert.Equal(t, int64(99), payments.MinorUnits(0.999))
	assert.Equal(t, int64(0), payments.MinorUnits(0))
}
