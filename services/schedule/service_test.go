// File: services/schedule/service_test.go
package schedule

import (
	"context"
	"testing"

	"studiobook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildViewOrdersByStartTime(t *testing.T) {
	sched := models.DaySchedule{
		Slots: map[string]models.Slot{
			"evening": {Name: "Reformer PM", StartTime: "18:00", EndTime: "19:00", Active: true},
			"dawn":    {Name: "Hot Yoga", StartTime: "06:30", EndTime: "07:30", Active: true},
			"noon":    {Name: "Mat", StartTime: "12:00", EndTime: "13:00", Active: true},
		},
		RemainingSlots: map[string]int{"evening": 1, "dawn": 2, "noon": 3},
	}

	view := BuildView("2026-09-07", "Mon", &sched)
	require.Len(t, view.Slots, 3)
	assert.Equal(t, []string{"dawn", "noon", "evening"}, []string{view.Slots[0].ID, view.Slots[1].ID, view.Slots[2].ID})
	assert.Equal(t, 2, view.Remaining["dawn"])
}

func TestBuildViewTieBreaksByID(t *testing.T) {
	sched := models.DaySchedule{
		Slots: map[string]models.Slot{
			"b": {StartTime: "09:00"},
			"a": {StartTime: "09:00"},
		},
	}
	view := BuildView("2026-09-07", "Mon", &sched)
	assert.Equal(t, "a", view.Slots[0].ID)
	assert.Equal(t, "b", view.Slots[1].ID)
}

func TestBuildViewMissingDocument(t *testing.T) {
	view := BuildView("2026-09-07", "Mon", nil)
	assert.Empty(t, view.Slots)
	assert.NotNil(t, view.Remaining)
	assert.False(t, view.StudioClosed)
}

func TestBuildViewStudioClosed(t *testing.T) {
	view := BuildView("2026-09-07", "Mon", &models.DaySchedule{StudioClosed: true})
	assert.True(t, view.StudioClosed)
}

func TestSnapshotResolvesWeekday(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.docs["Mon"] = &models.DaySchedule{
		Slots:          map[string]models.Slot{"r1": {StartTime: "08:00", Active: true}},
		RemainingSlots: map[string]int{"r1": 2},
	}
	svc := &DefaultScheduleService{Repo: repo, Clock: loaderClock}

	view, err := svc.Snapshot(context.Background(), "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, "Mon", view.Weekday)
	require.Len(t, view.Slots, 1)
	assert.Equal(t, "r1", view.Slots[0].ID)
}

func TestSnapshotInvalidDate(t *testing.T) {
	svc := &DefaultScheduleService{Repo: newFakeScheduleRepo(), Clock: loaderClock}
	_, err := svc.Snapshot(context.Background(), "07-09-2026")
	assert.Error(t, err)
}
