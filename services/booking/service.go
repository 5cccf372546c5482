// File: services/booking/service.go
package booking

import (
	"context"
	"fmt"

	"studiobook/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) Classes(ctx context.Context, sess models.Session, date string) (*ClassesView, error) {
	view, err := s.Schedule.Snapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes for %s: %w", date, err)
	}

	in, points := s.evalContext(ctx, sess.UID, date, view)

	out := &ClassesView{
		Date:         view.Date,
		Weekday:      view.Weekday,
		StudioClosed: view.StudioClosed,
		Points:       points,
		TotalPoints:  points.Total(),
	}

	bookedSet := make(map[string]bool, len(in.BookedSlotIDs))
	for _, id := range in.BookedSlotIDs {
		bookedSet[id] = true
	}

	for _, cat := range CategoryOrder {
		group := ClassGroup{Category: cat, Title: CategoryTitles[cat]}
		for _, slot := range view.Slots {
			if c, ok := CategoryOf(slot.Type); !ok || c != cat {
				continue
			}
			group.Slots = append(group.Slots, SlotStatus{
				Slot:      slot,
				Remaining: view.Remaining[slot.ID],
				Booked:    bookedSet[slot.ID],
				Decision:  Evaluate(slot, in),
			})
		}
		if len(group.Slots) > 0 {
			out.Groups = append(out.Groups, group)
		}
	}
	return out, nil
}

func (s *DefaultBookingService) Confirm(ctx context.Context, sess models.Session, req models.BookingRequest) (*models.BookingConfirmation, error) {
	if err := s.acquire(sess.UID); err != nil {
		return nil, err
	}
	defer s.release(sess.UID)

	view, err := s.Schedule.Snapshot(ctx, req.Date)
	if err != nil {
		return nil, NewBookingError(CodeUnknown, fmt.Sprintf("failed to refresh schedule: %v", err))
	}

	var target *models.Slot
	for i := range view.Slots {
		if view.Slots[i].ID == req.SlotID {
			target = &view.Slots[i]
			break
		}
	}
	if target == nil || view.StudioClosed {
		return nil, &IneligibleError{Reason: ReasonUnavailable}
	}

	in, _ := s.evalContext(ctx, sess.UID, req.Date, view)
	if dec := Evaluate(*target, in); !dec.CanBook {
		return nil, &IneligibleError{Reason: dec.Reason}
	}

	// Not idempotent: a failure after this point is reported, never retried.
	if err := s.Callable.BookSlot(ctx, sess.IDToken, req); err != nil {
		return nil, err
	}

	return &models.BookingConfirmation{
		SlotID:    target.ID,
		SlotName:  target.Name,
		TimeLabel: target.TimeLabel,
		Date:      req.Date,
	}, nil
}

func (s *DefaultBookingService) History(ctx context.Context, userID, from, to string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// evalContext gathers the ambient state one evaluation needs. Read failures
// degrade fail-closed: an unknown balance evaluates as no points, unknown
// bookings as none held.
func (s *DefaultBookingService) evalContext(ctx context.Context, uid, date string, view *models.ScheduleView) (EvalInput, models.PointBalance) {
	booked, err := s.Bookings.BookedSlotIDs(ctx, uid, date)
	if err != nil {
		zap.L().Warn("bookings read failed, evaluating with none", zap.String("uid", uid), zap.Error(err))
		booked = nil
	}

	var points *models.PointBalance
	balance, err := s.Points.Get(ctx, uid)
	if err != nil {
		zap.L().Warn("points read failed, evaluating with unknown balance", zap.String("uid", uid), zap.Error(err))
	} else {
		points = &balance
	}

	in := EvalInput{
		Remaining:     view.Remaining,
		Now:           s.Clock.Now(),
		SelectedDate:  date,
		Points:        points,
		BookedSlotIDs: booked,
		DaySlots:      view.Slots,
	}
	if points == nil {
		return in, models.PointBalance{}
	}
	return in, *points
}

func (s *DefaultBookingService) acquire(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		s.inFlight = make(map[string]bool)
	}
	if s.inFlight[uid] {
		return ErrConfirmationInFlight
	}
	s.inFlight[uid] = true
	return nil
}

func (s *DefaultBookingService) release(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, uid)
}
