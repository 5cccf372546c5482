package models

import "time"

// PaymentStatus is the gateway-reported state of a checkout.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// AttemptState is the client-facing lifecycle of a payment attempt. Every
// initiated attempt reaches exactly one of AttemptSuccess or AttemptCancelled.
type AttemptState string

const (
	AttemptPending   AttemptState = "PENDING"
	AttemptSuccess   AttemptState = "SUCCESS"
	AttemptCancelled AttemptState = "CANCELLED"
)

// PaymentAttempt tracks one purchase handshake: checkout created, popup opened
// by the browser, status polled until a terminal state.
type PaymentAttempt struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	PlanCode    string       `json:"planCode"`
	Price       float64      `json:"price"`
	CheckoutID  string       `json:"checkoutId,omitempty"`
	CheckoutURL string       `json:"checkoutUrl"`
	State       AttemptState `json:"state"`
	CreatedAt   time.Time    `json:"createdAt"`
	ResolvedAt  *time.Time   `json:"resolvedAt,omitempty"`
}

// CheckoutSession is what the external gateway returns on attempt creation.
type CheckoutSession struct {
	ID  string
	URL string
}
