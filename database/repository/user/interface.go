// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"studiobook/models"
)

// UserRepository reads and writes Users/{uid} profile documents. Profile
// existence is the onboarding marker.
type UserRepository interface {
	// Get returns the profile for a uid, or (nil, nil) when none exists.
	Get(ctx context.Context, uid string) (*models.Profile, error)

	// Create writes a new profile document.
	Create(ctx context.Context, profile models.Profile) error
}
