// File: database/repository/schedule/firestore.go
package scheduleRepo

import (
	"context"
	"sync"

	"studiobook/models"
	"studiobook/utils"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const classesCollection = "Classes"

type firestoreScheduleRepo struct {
	client *firestore.Client
}

// NewFirestoreScheduleRepo constructs a ScheduleRepository over the shared
// Firestore client.
func NewFirestoreScheduleRepo() ScheduleRepository {
	return &firestoreScheduleRepo{client: utils.GetFirestoreClient()}
}

func (r *firestoreScheduleRepo) Get(ctx context.Context, weekday string) (*models.DaySchedule, error) {
	snap, err := r.client.Collection(classesCollection).Doc(weekday).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDaySchedule(weekday, snap)
}

func (r *firestoreScheduleRepo) Watch(ctx context.Context, weekday string) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &firestoreScheduleSub{
		cancel:  cancel,
		updates: make(chan models.DaySchedule, 1),
	}

	snaps := r.client.Collection(classesCollection).Doc(weekday).Snapshots(subCtx)

	go func() {
		defer close(sub.updates)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				// Cancellation is a clean teardown, everything else is reported.
				if subCtx.Err() == nil {
					sub.setErr(err)
				}
				return
			}
			if !snap.Exists() {
				// Deleted or absent document: deliver the empty schedule.
				select {
				case sub.updates <- models.DaySchedule{Weekday: weekday}:
				case <-subCtx.Done():
					return
				}
				continue
			}
			sched, err := decodeDaySchedule(weekday, snap)
			if err != nil {
				zap.L().Warn("schedule: dropping malformed snapshot",
					zap.String("weekday", weekday), zap.Error(err))
				continue
			}
			select {
			case sub.updates <- *sched:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}

func decodeDaySchedule(weekday string, snap *firestore.DocumentSnapshot) (*models.DaySchedule, error) {
	var sched models.DaySchedule
	if err := snap.DataTo(&sched); err != nil {
		return nil, err
	}
	sched.Weekday = weekday
	for id, slot := range sched.Slots {
		slot.ID = id
		sched.Slots[id] = slot
	}
	return &sched, nil
}

type firestoreScheduleSub struct {
	cancel  context.CancelFunc
	updates chan models.DaySchedule

	mu  sync.Mutex
	err error
}

func (s *firestoreScheduleSub) Updates() <-chan models.DaySchedule { return s.updates }

func (s *firestoreScheduleSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *firestoreScheduleSub) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *firestoreScheduleSub) Unsubscribe() { s.cancel() }
