// File: services/schedule/service.go
package schedule

import (
	"context"
	"fmt"
	"sort"

	"studiobook/models"
)

func (s *DefaultScheduleService) Snapshot(ctx context.Context, date string) (*models.ScheduleView, error) {
	weekday, err := s.Clock.WeekdayKey(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	sched, err := s.Repo.Get(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", weekday, err)
	}
	view := BuildView(date, weekday, sched)
	return &view, nil
}

func (s *DefaultScheduleService) NewLoader() *Loader {
	return NewLoader(s.Repo, s.Clock)
}

// BuildView decomposes a raw weekday document into the render-ready
// projection: slots ordered by start time, remaining-capacity map, closed
// flag. A nil schedule (missing document) yields the empty "no classes" view.
//
// Ordering compares the zero-padded "HH:mm" strings directly; this is
// intentional, it avoids timezone-sensitive time parsing.
func BuildView(date, weekday string, sched *models.DaySchedule) models.ScheduleView {
	view := models.ScheduleView{
		Date:      date,
		Weekday:   weekday,
		Remaining: map[string]int{},
	}
	if sched == nil {
		return view
	}

	view.StudioClosed = sched.StudioClosed
	if sched.RemainingSlots != nil {
		view.Remaining = sched.RemainingSlots
	}

	slots := make([]models.Slot, 0, len(sched.Slots))
	for id, slot := range sched.Slots {
		slot.ID = id
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})
	view.Slots = slots
	return view
}
