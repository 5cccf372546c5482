// File: database/repository/bookings/interface.go
package bookingsRepo

import (
	"context"

	"studiobook/models"
)

// BookingsRepository reads server-authoritative booking records. Records are
// created only by the remote booking procedure; this surface never writes.
type BookingsRepository interface {
	// ListByUserAndDate returns the user's bookings for one studio-local date.
	ListByUserAndDate(ctx context.Context, userID, date string) ([]models.Booking, error)

	// ListByUserAndRange returns bookings with from <= date <= to, newest first.
	ListByUserAndRange(ctx context.Context, userID, from, to string) ([]models.Booking, error)

	// BookedSlotIDs returns the slot ids the user holds for one date.
	BookedSlotIDs(ctx context.Context, userID, date string) ([]string, error)
}
