// File: services/schedule/interface.go
package schedule

import (
	"context"

	scheduleRepo "studiobook/database/repository/schedule"
	"studiobook/models"
	"studiobook/utils"
)

// ScheduleService resolves bookable slots for a selected calendar date.
type ScheduleService interface {
	// Snapshot performs a one-shot read of the schedule for a date.
	Snapshot(ctx context.Context, date string) (*models.ScheduleView, error)

	// NewLoader returns a live loader bound to this service's repository.
	NewLoader() *Loader
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Repo  scheduleRepo.ScheduleRepository
	Clock utils.StudioClock
}
