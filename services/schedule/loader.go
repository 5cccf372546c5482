// File: services/schedule/loader.go
package schedule

import (
	"context"
	"sync"

	scheduleRepo "studiobook/database/repository/schedule"
	"studiobook/models"
	"studiobook/utils"

	"go.uber.org/zap"
)

// Loader maintains the live schedule subscription for the currently selected
// date. Selecting a new date supersedes the previous subscription: the old
// watch is torn down before the new one is opened, and a generation check
// drops any update still in flight from a stale watch, so a newer selection's
// snapshot always wins regardless of delivery order.
type Loader struct {
	repo  scheduleRepo.ScheduleRepository
	clock utils.StudioClock
	out   chan models.ScheduleView

	mu     sync.Mutex
	gen    uint64
	active scheduleRepo.Subscription
	closed bool
}

// NewLoader builds an idle loader. Updates delivers nothing until Select.
func NewLoader(repo scheduleRepo.ScheduleRepository, clock utils.StudioClock) *Loader {
	return &Loader{
		repo:  repo,
		clock: clock,
		out:   make(chan models.ScheduleView, 1),
	}
}

// Updates yields schedule views for the selected date. A buffered channel of
// one means a slow consumer sees only the freshest view.
func (l *Loader) Updates() <-chan models.ScheduleView {
	return l.out
}

// Select switches the loader to a new calendar date. A failing subscription
// setup degrades to the safe empty view instead of failing the selection;
// only a malformed date is an error.
func (l *Loader) Select(ctx context.Context, date string) error {
	weekday, err := l.clock.WeekdayKey(date)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.gen++
	gen := l.gen
	if l.active != nil {
		l.active.Unsubscribe()
		l.active = nil
	}
	l.mu.Unlock()

	sub, err := l.repo.Watch(ctx, weekday)
	if err != nil {
		zap.L().Warn("schedule loader: subscription failed, showing no classes",
			zap.String("date", date), zap.Error(err))
		l.deliver(gen, BuildView(date, weekday, nil))
		return nil
	}

	l.mu.Lock()
	if l.closed || gen != l.gen {
		// A newer Select (or Close) raced us; this subscription lost.
		l.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	l.active = sub
	l.mu.Unlock()

	go l.forward(gen, date, weekday, sub)
	return nil
}

// Close tears down the active subscription and stops delivery.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.active != nil {
		l.active.Unsubscribe()
		l.active = nil
	}
	close(l.out)
}

func (l *Loader) forward(gen uint64, date, weekday string, sub scheduleRepo.Subscription) {
	for sched := range sub.Updates() {
		s := sched
		l.deliver(gen, BuildView(date, weekday, &s))
	}
	if err := sub.Err(); err != nil {
		zap.L().Warn("schedule loader: subscription ended, showing no classes",
			zap.String("date", date), zap.Error(err))
		l.deliver(gen, BuildView(date, weekday, nil))
	}
}

// deliver publishes a view unless it belongs to a superseded generation.
// The send replaces any queued stale view rather than blocking.
func (l *Loader) deliver(gen uint64, view models.ScheduleView) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		return
	}
	select {
	case l.out <- view:
	default:
		select {
		case <-l.out:
		default:
		}
		select {
		case l.out <- view:
		default:
		}
	}
}
