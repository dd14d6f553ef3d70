package payment

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentGateway creates and retrieves payment intents.
type IntentGateway interface {
	CreateIntent(amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error)
	GetIntent(intentID string) (*stripe.PaymentIntent, error)
}

// StripeGateway talks to Stripe with the package-level key set at startup.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return paymentintent.New(params)
}

func (StripeGateway) GetIntent(intentID string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(intentID, nil)
}
