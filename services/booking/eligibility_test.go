// File: services/booking/eligibility_test.go
package booking

import (
	"fmt"
	"testing"
	"time"

	"studiobook/models"
	"studiobook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = utils.NewStudioClock("IST", 330)

func studioTime(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, testClock.Location())
}

func makeSlot(id string, typ models.SlotType, start, end string) models.Slot {
	return models.Slot{
		ID:        id,
		Name:      string(typ) + " class",
		Type:      typ,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
}

func bookableInput(slot models.Slot) EvalInput {
	return EvalInput{
		Remaining:    map[string]int{slot.ID: 5},
		Now:          studioTime(8, 0),
		SelectedDate: "2026-09-01",
		Points:       &models.PointBalance{ReformerPoints: 3, MatPoints: 3, HotPoints: 3},
		DaySlots:     []models.Slot{slot},
	}
}

func TestEvaluateBookNow(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")
	dec := Evaluate(slot, bookableInput(slot))
	require.True(t, dec.CanBook)
	assert.Equal(t, ReasonBookNow, dec.Reason)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")
	in := bookableInput(slot)
	assert.Equal(t, Evaluate(slot, in), Evaluate(slot, in))

	// Same holds for a refusal.
	in.Points = nil
	assert.Equal(t, Evaluate(slot, in), Evaluate(slot, in))
}

func TestEvaluatePrecedence(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")

	tests := []struct {
		name   string
		mutate func(*models.Slot, *EvalInput)
		reason string
	}{
		{
			name:   "inactive wins over everything",
			mutate: func(s *models.Slot, in *EvalInput) { s.Active = false; in.Remaining = nil; in.Points = nil },
			reason: ReasonInactive,
		},
		{
			name:   "full",
			mutate: func(s *models.Slot, in *EvalInput) { in.Remaining = map[string]int{s.ID: 0} },
			reason: ReasonFull,
		},
		{
			name:   "capacity missing from map fails closed",
			mutate: func(s *models.Slot, in *EvalInput) { in.Remaining = map[string]int{} },
			reason: ReasonFull,
		},
		{
			name: "full wins over already booked",
			mutate: func(s *models.Slot, in *EvalInput) {
				in.Remaining = map[string]int{s.ID: 0}
				in.BookedSlotIDs = []string{s.ID}
			},
			reason: ReasonFull,
		},
		{
			name:   "already booked",
			mutate: func(s *models.Slot, in *EvalInput) { in.BookedSlotIDs = []string{s.ID} },
			reason: ReasonAlreadyBooked,
		},
		{
			name:   "already booked wins over no points",
			mutate: func(s *models.Slot, in *EvalInput) { in.BookedSlotIDs = []string{s.ID}; in.Points = nil },
			reason: ReasonAlreadyBooked,
		},
		{
			name:   "past date",
			mutate: func(s *models.Slot, in *EvalInput) { in.SelectedDate = "2026-08-31" },
			reason: ReasonPastDate,
		},
		{
			name:   "past date wins over no points",
			mutate: func(s *models.Slot, in *EvalInput) { in.SelectedDate = "2026-08-31"; in.Points = nil },
			reason: ReasonPastDate,
		},
		{
			name:   "no points",
			mutate: func(s *models.Slot, in *EvalInput) { in.Points = &models.PointBalance{} },
			reason: ReasonNoPoints,
		},
		{
			name:   "unknown balance treated as no points",
			mutate: func(s *models.Slot, in *EvalInput) { in.Points = nil },
			reason: ReasonNoPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := slot
			in := bookableInput(s)
			tt.mutate(&s, &in)
			dec := Evaluate(s, in)
			assert.False(t, dec.CanBook)
			assert.Equal(t, tt.reason, dec.Reason)
		})
	}
}

func TestEvaluateCutoffWindow(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")

	tests := []struct {
		name    string
		now     time.Time
		canBook bool
		reason  string
	}{
		{"well before start", studioTime(17, 54), true, ReasonBookNow},
		{"exactly at cutoff", studioTime(17, 55), false, ReasonStartsSoon},
		{"inside cutoff window", studioTime(17, 59), false, ReasonStartsSoon},
		{"exactly at start", studioTime(18, 0), false, ReasonStarted},
		{"mid class", studioTime(18, 30), false, ReasonStarted},
		{"exactly at end", studioTime(19, 0), false, ReasonUnavailable},
		{"after end", studioTime(21, 0), false, ReasonUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bookableInput(slot)
			in.Now = tt.now
			dec := Evaluate(slot, in)
			assert.Equal(t, tt.canBook, dec.CanBook)
			assert.Equal(t, tt.reason, dec.Reason)
		})
	}
}

func TestEvaluateCutoffOnlyAppliesToday(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")
	in := bookableInput(slot)
	in.Now = studioTime(18, 30) // class underway today
	in.SelectedDate = "2026-09-02"

	dec := Evaluate(slot, in)
	assert.True(t, dec.CanBook, "tomorrow's class must not hit today's cutoff")
}

func TestEvaluateMalformedStartTimeIsUnavailable(t *testing.T) {
	slot := makeSlot("r1", models.SlotTypeReformer, "bogus", "19:00")
	in := bookableInput(slot)
	in.Now = studioTime(10, 0)

	dec := Evaluate(slot, in)
	assert.False(t, dec.CanBook)
	assert.Equal(t, ReasonUnavailable, dec.Reason)
}

func TestEvaluateCategoryExclusivity(t *testing.T) {
	reformer1 := makeSlot("r1", models.SlotTypeReformer, "18:00", "19:00")
	reformer2 := makeSlot("r2", models.SlotTypeReformer, "19:00", "20:00")
	hotYoga := makeSlot("h1", models.SlotTypeHotYoga, "07:00", "08:00")
	hotPilates := makeSlot("h2", models.SlotTypeHotPilates, "09:00", "10:00")
	mat := makeSlot("m1", models.SlotTypeMat, "11:00", "12:00")
	day := []models.Slot{reformer1, reformer2, hotYoga, hotPilates, mat}

	baseInput := func(booked ...string) EvalInput {
		return EvalInput{
			Remaining:     map[string]int{"r1": 2, "r2": 2, "h1": 2, "h2": 2, "m1": 2},
			Now:           studioTime(6, 0),
			SelectedDate:  "2026-09-01",
			Points:        &models.PointBalance{ReformerPoints: 3, MatPoints: 3, HotPoints: 3},
			BookedSlotIDs: booked,
			DaySlots:      day,
		}
	}

	t.Run("same category blocked", func(t *testing.T) {
		dec := Evaluate(reformer2, baseInput("r1"))
		assert.Equal(t, ReasonCategoryTaken, dec.Reason)
	})

	t.Run("hot yoga blocks hot pilates", func(t *testing.T) {
		dec := Evaluate(hotPilates, baseInput("h1"))
		assert.Equal(t, ReasonCategoryTaken, dec.Reason)
	})

	t.Run("other category unaffected", func(t *testing.T) {
		dec := Evaluate(mat, baseInput("r1"))
		assert.True(t, dec.CanBook)
	})
}

func TestEvaluateScenario(t *testing.T) {
	// One day, one user: reformer booked, hot class later today inside the
	// cutoff, mat class with no balance left.
	reformer := makeSlot("r1", models.SlotTypeReformer, "08:00", "09:00")
	hot := makeSlot("h1", models.SlotTypeHotYoga, "10:02", "11:00")
	mat := makeSlot("m1", models.SlotTypeMat, "17:00", "18:00")

	in := EvalInput{
		Remaining:     map[string]int{"r1": 1, "h1": 4, "m1": 4},
		Now:           studioTime(10, 0),
		SelectedDate:  "2026-09-01",
		Points:        &models.PointBalance{ReformerPoints: 2, HotPoints: 1},
		BookedSlotIDs: []string{"r1"},
		DaySlots:      []models.Slot{reformer, hot, mat},
	}

	assert.Equal(t, ReasonAlreadyBooked, Evaluate(reformer, in).Reason)
	assert.Equal(t, ReasonStartsSoon, Evaluate(hot, in).Reason)
	assert.Equal(t, ReasonNoPoints, Evaluate(mat, in).Reason)
}

func TestMinutesFromHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := MinutesFromHHMM(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
