// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"studiobook/models"
)

// Subscription is a live view of one weekday schedule document. Updates yields
// snapshots until Unsubscribe is called or the parent context ends; the channel
// is closed afterwards. Err reports why delivery stopped, nil on clean teardown.
type Subscription interface {
	Updates() <-chan models.DaySchedule
	Err() error
	Unsubscribe()
}

// ScheduleRepository reads the server-authored weekday schedule documents.
type ScheduleRepository interface {
	// Get fetches the schedule for a weekday key ("Mon".."Sun"). A missing
	// document returns (nil, nil): no classes, not an error.
	Get(ctx context.Context, weekday string) (*models.DaySchedule, error)

	// Watch opens a live subscription to the weekday document.
	Watch(ctx context.Context, weekday string) (Subscription, error)
}
