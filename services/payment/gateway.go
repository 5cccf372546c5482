// File: services/payment/gateway.go
package payment

import (
	"context"

	"studiobook/models"
)

// Gateway is the external checkout provider. The provider owns the money
// movement; this service only creates checkouts and reads their status.
type Gateway interface {
	// CreateCheckout opens a hosted checkout for one plan purchase.
	CreateCheckout(ctx context.Context, attemptID string, plan models.Plan) (models.CheckoutSession, error)

	// Status reports the provider's current view of a checkout.
	Status(ctx context.Context, checkoutID string) (models.PaymentStatus, error)
}
