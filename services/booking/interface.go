// File: services/booking/interface.go
package booking

import (
	"context"
	"sync"

	bookingsRepo "studiobook/database/repository/bookings"
	pointsRepo "studiobook/database/repository/points"
	"studiobook/models"
	"studiobook/services/schedule"
	"studiobook/utils"
)

// ClassGroup is one category section of the class listing.
type ClassGroup struct {
	Category Category     `json:"category"`
	Title    string       `json:"title"`
	Slots    []SlotStatus `json:"slots"`
}

// SlotStatus is one slot annotated with the evaluation outcome.
type SlotStatus struct {
	models.Slot
	Remaining int      `json:"remaining"`
	Booked    bool     `json:"booked"`
	Decision  Decision `json:"decision"`
}

// ClassesView is the full render model for one selected date.
type ClassesView struct {
	Date         string              `json:"date"`
	Weekday      string              `json:"weekday"`
	StudioClosed bool                `json:"studioClosed"`
	Points       models.PointBalance `json:"points"`
	TotalPoints  int                 `json:"totalPoints"`
	Groups       []ClassGroup        `json:"groups"`
}

// BookingService evaluates eligibility and submits confirmations.
type BookingService interface {
	// Classes builds the annotated class listing for a date.
	Classes(ctx context.Context, sess models.Session, date string) (*ClassesView, error)

	// Confirm re-checks eligibility against fresh state and submits the
	// booking through the remote procedure. Refusals come back as
	// *IneligibleError, remote rejections as *BookingError.
	Confirm(ctx context.Context, sess models.Session, req models.BookingRequest) (*models.BookingConfirmation, error)

	// History lists the user's bookings in an inclusive date range.
	History(ctx context.Context, userID, from, to string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Schedule schedule.ScheduleService
	Bookings bookingsRepo.BookingsRepository
	Points   pointsRepo.PointsRepository
	Callable CallableClient
	Clock    utils.StudioClock

	mu       sync.Mutex
	inFlight map[string]bool
}
