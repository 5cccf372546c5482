// File: database/repository/points/interface.go
package pointsRepo

import (
	"context"

	"studiobook/models"
)

// Subscription is a live view of one user's point balance document.
type Subscription interface {
	Updates() <-chan models.PointBalance
	Err() error
	Unsubscribe()
}

// PointsRepository reads per-user point balances. Balances are mutated only by
// the server-side booking procedure; this surface is read-only.
type PointsRepository interface {
	// Get returns the balance for a user. A missing document returns the zero
	// balance, not an error.
	Get(ctx context.Context, userID string) (models.PointBalance, error)

	// Watch opens a live subscription to the user's balance document.
	Watch(ctx context.Context, userID string) (Subscription, error)
}
