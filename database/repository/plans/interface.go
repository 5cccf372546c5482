// File: database/repository/plans/interface.go
package plansRepo

import (
	"context"

	"studiobook/models"
)

// Subscription is a live view of the active plan catalog.
type Subscription interface {
	Updates() <-chan []models.Plan
	Err() error
	Unsubscribe()
}

// PlansRepository reads the purchasable plan catalog. Plans are server-authored
// configuration, read-only to this service.
type PlansRepository interface {
	// ListActive returns all plans with active == true.
	ListActive(ctx context.Context) ([]models.Plan, error)

	// WatchActive opens a live subscription to the active-plans query.
	WatchActive(ctx context.Context) (Subscription, error)
}
