// File: services/payment/stripe.go
package payment

import (
	"context"
	"fmt"
	"math"

	"studiobook/config"
	"studiobook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

type stripeGateway struct {
	successURL string
	cancelURL  string
	currency   string
}

// NewStripeGateway builds the Stripe Checkout gateway from AppConfig.
func NewStripeGateway() Gateway {
	stripe.Key = config.AppConfig.StripeKey
	return &stripeGateway{
		successURL: config.AppConfig.CheckoutSuccessURL,
		cancelURL:  config.AppConfig.CheckoutCancelURL,
		currency:   config.AppConfig.CheckoutCurrency,
	}
}

func (g *stripeGateway) CreateCheckout(ctx context.Context, attemptID string, plan models.Plan) (models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(attemptID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(int64(math.Round(plan.Price * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(plan.Name),
						Description: stripe.String(plan.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("failed to create checkout: %w", err)
	}
	return models.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *stripeGateway) Status(ctx context.Context, checkoutID string) (models.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(checkoutID, params)
	if err != nil {
		return "", fmt.Errorf("failed to read checkout %s: %w", checkoutID, err)
	}
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return models.PaymentSuccess, nil
	}
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return models.PaymentFailed, nil
	}
	return models.PaymentPending, nil
}
