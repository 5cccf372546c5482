// File: services/booking/eligibility.go
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studiobook/models"
)

// Booking closes this many minutes before class start, a skew margin between
// client and server clocks.
const CutoffMarginMinutes = 5

// Reason strings surfaced on the book button. Local eligibility failures are
// displayable decisions, never errors.
const (
	ReasonInactive      = "Inactive"
	ReasonFull          = "Full"
	ReasonAlreadyBooked = "Already booked"
	ReasonPastDate      = "Past date"
	ReasonStartsSoon    = "Class starts soon"
	ReasonStarted       = "Class started"
	ReasonUnavailable   = "Unavailable"
	ReasonCategoryTaken = "One per category per day"
	ReasonNoPoints      = "No points"
	ReasonBookNow       = "Book Now"
)

// Decision is the outcome of one eligibility evaluation. Advisory only: the
// remote booking procedure remains authoritative and may still reject.
type Decision struct {
	CanBook bool   `json:"canBook"`
	Reason  string `json:"reason"`
}

// EvalInput is the ambient context for one evaluation.
//
// Now must already be expressed in the studio's zone (utils.StudioClock.Now);
// comparing a server-local clock against studio-local slot times corrupts the
// cutoff. SelectedDate is a studio-local "YYYY-MM-DD". Points is nil while the
// balance document is unknown.
type EvalInput struct {
	Remaining     map[string]int
	Now           time.Time
	SelectedDate  string
	Points        *models.PointBalance
	BookedSlotIDs []string
	DaySlots      []models.Slot
}

// Evaluate decides whether a slot is bookable under the given context.
//
// The checks run in fixed precedence so the most actionable failure surfaces
// first: structural state (active, capacity, already booked), then the
// calendar and same-day cutoff window, then category exclusivity, then the
// point balance. The function is pure; it performs no I/O and is safe to
// re-run on every render.
func Evaluate(slot models.Slot, in EvalInput) Decision {
	if !slot.Active {
		return Decision{Reason: ReasonInactive}
	}

	// Capacity absent from the map fails closed, not open.
	spots, known := in.Remaining[slot.ID]
	if !known || spots <= 0 {
		return Decision{Reason: ReasonFull}
	}

	bookedSet := make(map[string]bool, len(in.BookedSlotIDs))
	for _, id := range in.BookedSlotIDs {
		bookedSet[id] = true
	}
	if bookedSet[slot.ID] {
		return Decision{Reason: ReasonAlreadyBooked}
	}

	today := in.Now.Format("2006-01-02")
	if in.SelectedDate < today {
		return Decision{Reason: ReasonPastDate}
	}

	if in.SelectedDate == today {
		start, err := MinutesFromHHMM(slot.StartTime)
		if err != nil {
			return Decision{Reason: ReasonUnavailable}
		}
		current := in.Now.Hour()*60 + in.Now.Minute()
		cutoff := start - CutoffMarginMinutes

		if current >= cutoff {
			if current < start {
				return Decision{Reason: ReasonStartsSoon}
			}
			end, err := MinutesFromHHMM(slot.EndTime)
			if err == nil && current < end {
				return Decision{Reason: ReasonStarted}
			}
			return Decision{Reason: ReasonUnavailable}
		}
	}

	if cat, ok := CategoryOf(slot.Type); ok {
		for _, s := range in.DaySlots {
			if !bookedSet[s.ID] {
				continue
			}
			if other, ok := CategoryOf(s.Type); ok && other == cat {
				return Decision{Reason: ReasonCategoryTaken}
			}
		}
	}

	if in.Points == nil || PointsFor(slot.Type, *in.Points) <= 0 {
		return Decision{Reason: ReasonNoPoints}
	}

	return Decision{CanBook: true, Reason: ReasonBookNow}
}

// MinutesFromHHMM parses a zero-padded "HH:mm" studio-local time of day into
// minutes since midnight.
func MinutesFromHHMM(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour*60 + minute, nil
}
